package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mardelta/portfolio-api/internal/model"
)

func blogRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "excerpt", "content", "category", "tags",
		"published_at", "read_time", "image", "created_at", "updated_at",
	}).AddRow(
		"id-1", "Go generics", "short", "<p>body</p>", "go", []byte(`["go","types"]`),
		"2025-05-01", "5 min", nil, now, now,
	)
}

func TestBlogListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewBlogRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM blog_posts ORDER BY published_at DESC, created_at DESC").
		WillReturnRows(blogRows(t))

	posts, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Title != "Go generics" {
		t.Fatalf("unexpected title %q", posts[0].Title)
	}
	if len(posts[0].Tags) != 2 || posts[0].Tags[0] != "go" {
		t.Fatalf("tags not decoded: %#v", posts[0].Tags)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBlogGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewBlogRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM blog_posts WHERE id = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlogCreateAssignsIDAndTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewBlogRepo(db)

	mock.ExpectExec("INSERT INTO blog_posts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &model.BlogPost{
		Title:       "Go generics",
		Excerpt:     "short",
		Content:     "<p>body</p>",
		Category:    "go",
		Tags:        []string{"go"},
		PublishedAt: "2025-05-01",
		ReadTime:    "5 min",
	}
	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if post.ID == "" {
		t.Fatal("expected Create to assign an id")
	}
	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Fatal("expected Create to assign timestamps")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBlogDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewBlogRepo(db)

	mock.ExpectExec("DELETE FROM blog_posts WHERE id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlogUpdateNoFieldsFallsBackToGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewBlogRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM blog_posts WHERE id = ?").
		WithArgs("id-1").
		WillReturnRows(blogRows(t))

	got, err := repo.Update(context.Background(), "id-1", model.BlogPostUpdate{})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if got.ID != "id-1" {
		t.Fatalf("unexpected id %q", got.ID)
	}
}

func TestBlogUpdateMissingPost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewBlogRepo(db)

	title := "renamed"
	mock.ExpectExec("UPDATE blog_posts SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM blog_posts WHERE id = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.Update(context.Background(), "missing", model.BlogPostUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
