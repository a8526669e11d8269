package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mardelta/portfolio-api/internal/model"
)

type fakeBlogLister struct {
	rows []model.BlogPost
	err  error
}

func (f *fakeBlogLister) ListAll(context.Context) ([]model.BlogPost, error) {
	return f.rows, f.err
}

type fakeProjectLister struct {
	rows []model.Project
	err  error
}

func (f *fakeProjectLister) ListAll(context.Context) ([]model.Project, error) {
	return f.rows, f.err
}

func TestRefreshSwapsBothSnapshots(t *testing.T) {
	blogs := &fakeBlogLister{rows: []model.BlogPost{{ID: "b1", Title: "First"}}}
	projects := &fakeProjectLister{rows: []model.Project{{ID: "p1", Title: "Proj"}}}
	cc := NewContentCache(blogs, projects)

	require.NoError(t, cc.Refresh(context.Background()))
	assert.Equal(t, "b1", cc.Blogs()[0].ID)
	assert.Equal(t, "p1", cc.Projects()[0].ID)

	blogs.rows = []model.BlogPost{{ID: "b2"}, {ID: "b1"}}
	require.NoError(t, cc.Refresh(context.Background()))
	assert.Len(t, cc.Blogs(), 2)
	assert.Equal(t, "b2", cc.Blogs()[0].ID)
}

func TestRefreshFailureRetainsPreviousSnapshot(t *testing.T) {
	blogs := &fakeBlogLister{rows: []model.BlogPost{{ID: "b1"}}}
	projects := &fakeProjectLister{rows: []model.Project{{ID: "p1"}}}
	cc := NewContentCache(blogs, projects)
	require.NoError(t, cc.Refresh(context.Background()))

	blogs.err = errors.New("connection lost")
	err := cc.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache refresh blogs")

	// The stale snapshot keeps serving.
	assert.Equal(t, "b1", cc.Blogs()[0].ID)
	assert.Equal(t, "p1", cc.Projects()[0].ID)
}

func TestRefreshFailureOnSecondCollectionKeepsBoth(t *testing.T) {
	blogs := &fakeBlogLister{rows: []model.BlogPost{{ID: "b1"}}}
	projects := &fakeProjectLister{rows: []model.Project{{ID: "p1"}}}
	cc := NewContentCache(blogs, projects)
	require.NoError(t, cc.Refresh(context.Background()))

	// Blogs succeed, projects fail: neither snapshot may change, or readers
	// would see a mixed state.
	blogs.rows = []model.BlogPost{{ID: "b2"}}
	projects.err = errors.New("connection lost")
	require.Error(t, cc.Refresh(context.Background()))
	assert.Equal(t, "b1", cc.Blogs()[0].ID)
	assert.Equal(t, "p1", cc.Projects()[0].ID)
}

func TestReadsReturnIndependentCopies(t *testing.T) {
	blogs := &fakeBlogLister{rows: []model.BlogPost{{ID: "b1", Title: "orig"}}}
	cc := NewContentCache(blogs, &fakeProjectLister{})
	require.NoError(t, cc.Refresh(context.Background()))

	got := cc.Blogs()
	got[0].Title = "mutated"
	assert.Equal(t, "orig", cc.Blogs()[0].Title)
}

// generationLister serves a new three-row generation on every ListAll call,
// tagging every row with the generation marker so readers can tell whether a
// snapshot is internally consistent.
type generationLister struct {
	n atomic.Int64
}

func (f *generationLister) marker() string {
	if f.n.Add(1)%2 == 0 {
		return "even"
	}
	return "odd"
}

type generationBlogLister struct{ generationLister }

func (f *generationBlogLister) ListAll(context.Context) ([]model.BlogPost, error) {
	m := f.marker()
	rows := make([]model.BlogPost, 3)
	for i := range rows {
		rows[i] = model.BlogPost{ID: fmt.Sprintf("%s-%d", m, i), Category: m}
	}
	return rows, nil
}

type generationProjectLister struct{ generationLister }

func (f *generationProjectLister) ListAll(context.Context) ([]model.Project, error) {
	m := f.marker()
	rows := make([]model.Project, 3)
	for i := range rows {
		rows[i] = model.Project{ID: fmt.Sprintf("%s-%d", m, i), Category: m}
	}
	return rows, nil
}

func TestConcurrentReadsObserveWholeSnapshots(t *testing.T) {
	cc := NewContentCache(&generationBlogLister{}, &generationProjectLister{})
	require.NoError(t, cc.Refresh(context.Background()))

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				blogs := cc.Blogs()
				if len(blogs) != 3 {
					t.Errorf("partial blog snapshot: %d rows", len(blogs))
					return
				}
				for _, b := range blogs {
					if b.Category != blogs[0].Category {
						t.Errorf("mixed blog snapshot: %q next to %q", b.Category, blogs[0].Category)
						return
					}
				}
				projects := cc.Projects()
				if len(projects) != 3 {
					t.Errorf("partial project snapshot: %d rows", len(projects))
					return
				}
				for _, p := range projects {
					if p.Category != projects[0].Category {
						t.Errorf("mixed project snapshot: %q next to %q", p.Category, projects[0].Category)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		require.NoError(t, cc.Refresh(context.Background()))
	}
	close(done)
	wg.Wait()
}

func TestEmptyCacheServesEmptySlices(t *testing.T) {
	cc := NewContentCache(&fakeBlogLister{}, &fakeProjectLister{})
	assert.Empty(t, cc.Blogs())
	assert.Empty(t, cc.Projects())
}
