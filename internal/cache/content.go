// Package cache holds in-memory snapshots of the two high-traffic
// collections. The cache is an explicitly constructed object owned by the
// composition root and passed to the handlers that need it.
package cache

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mardelta/portfolio-api/internal/model"
)

// BlogLister is the read side of the blog repository consumed by the cache.
type BlogLister interface {
	ListAll(ctx context.Context) ([]model.BlogPost, error)
}

// ProjectLister is the read side of the project repository consumed by the
// cache.
type ProjectLister interface {
	ListAll(ctx context.Context) ([]model.Project, error)
}

// ContentCache stores ordered snapshots of blog posts and projects. Refresh
// replaces both snapshots wholesale under an exclusive lock; readers observe
// either the pre- or post-refresh state, never a mix. Every mutation of a
// cached collection must call Refresh before the request completes, which
// gives read-your-writes consistency at the cost of a full rebuild.
type ContentCache struct {
	mu       sync.RWMutex
	blogs    []model.BlogPost
	projects []model.Project

	blogRepo    BlogLister
	projectRepo ProjectLister
}

// NewContentCache builds an empty cache over the given repositories. Call
// Refresh to populate it.
func NewContentCache(blogs BlogLister, projects ProjectLister) *ContentCache {
	return &ContentCache{blogRepo: blogs, projectRepo: projects}
}

// Refresh re-queries both collections in full and swaps the snapshots. On a
// database failure the previous snapshots are retained and the error is
// returned to the caller; the cache never serves a partially updated state.
func (c *ContentCache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	blogs, err := c.blogRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("cache refresh blogs: %w", err)
	}
	projects, err := c.projectRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("cache refresh projects: %w", err)
	}

	c.blogs = blogs
	c.projects = projects
	log.Printf("cache refreshed (%d blogs, %d projects)", len(blogs), len(projects))
	return nil
}

// Blogs returns an independent copy of the cached blog posts, ordered by
// publish date descending.
func (c *ContentCache) Blogs() []model.BlogPost {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.BlogPost, len(c.blogs))
	copy(out, c.blogs)
	return out
}

// Projects returns an independent copy of the cached projects, ordered by
// creation date descending.
func (c *ContentCache) Projects() []model.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Project, len(c.projects))
	copy(out, c.projects)
	return out
}
