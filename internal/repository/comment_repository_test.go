package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mardelta/portfolio-api/internal/model"
)

var commentCols = []string{
	"id", "blog_post_id", "user_id", "parent_id", "content",
	"deleted_at", "created_at", "updated_at", "name", "avatar_url",
}

func TestListByPostBuildsTree(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	base := time.Now().UTC()
	rows := sqlmock.NewRows(commentCols).
		AddRow("c1", "post-1", "u1", nil, "root one", nil, base, base, "Alice", nil).
		AddRow("c2", "post-1", "u2", nil, "root two", nil, base.Add(time.Minute), base.Add(time.Minute), "Bob", "http://a/b.png").
		AddRow("c3", "post-1", "u1", "c1", "reply to one", nil, base.Add(2*time.Minute), base.Add(2*time.Minute), "Alice", nil)

	mock.ExpectQuery("SELECT (.+) FROM comments c").
		WithArgs("post-1").
		WillReturnRows(rows)

	tree, err := repo.ListByPost(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("ListByPost() error: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].ID != "c1" || tree[1].ID != "c2" {
		t.Fatalf("roots out of order: %s, %s", tree[0].ID, tree[1].ID)
	}
	if len(tree[0].Replies) != 1 || tree[0].Replies[0].ID != "c3" {
		t.Fatalf("reply not attached to its root: %#v", tree[0].Replies)
	}
}

func TestListByPostRedactsTombstonedComments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	base := time.Now().UTC()
	deleted := base.Add(time.Hour)
	rows := sqlmock.NewRows(commentCols).
		AddRow("c1", "post-1", "u1", nil, "original text", deleted, base, base, "Alice", nil).
		AddRow("c2", "post-1", "u2", "c1", "still here", nil, base.Add(time.Minute), base.Add(time.Minute), "Bob", nil)

	mock.ExpectQuery("SELECT (.+) FROM comments c").
		WithArgs("post-1").
		WillReturnRows(rows)

	tree, err := repo.ListByPost(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("ListByPost() error: %v", err)
	}
	root := tree[0]
	if !root.Deleted {
		t.Fatal("expected tombstoned root to be marked deleted")
	}
	if root.Content != model.DeletedCommentContent || root.UserName != model.DeletedCommentAuthor {
		t.Fatalf("tombstoned comment not redacted: %q by %q", root.Content, root.UserName)
	}
	// The reply under the tombstone stays intact and reachable.
	if len(root.Replies) != 1 || root.Replies[0].Content != "still here" {
		t.Fatalf("reply lost or mutated: %#v", root.Replies)
	}
}

func TestListByPostOrphanedReplySurfacesAtTopLevel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	base := time.Now().UTC()
	rows := sqlmock.NewRows(commentCols).
		AddRow("c2", "post-1", "u2", "gone", "orphan", nil, base, base, "Bob", nil)

	mock.ExpectQuery("SELECT (.+) FROM comments c").
		WithArgs("post-1").
		WillReturnRows(rows)

	tree, err := repo.ListByPost(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("ListByPost() error: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "c2" {
		t.Fatalf("orphaned reply dropped: %#v", tree)
	}
}

func getByIDRows(userID string, deletedAt any) *sqlmock.Rows {
	base := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "blog_post_id", "user_id", "parent_id", "content",
		"deleted_at", "created_at", "updated_at",
	}).AddRow("c1", "post-1", userID, nil, "text", deletedAt, base, base)
}

func TestSoftDeleteByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE id = ?").
		WithArgs("c1").
		WillReturnRows(getByIDRows("u1", nil))
	mock.ExpectExec("UPDATE comments SET deleted_at = (.+) WHERE id = (.+) AND deleted_at IS NULL").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SoftDelete(context.Background(), "c1", "u1", false); err != nil {
		t.Fatalf("SoftDelete() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSoftDeleteByStrangerForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE id = ?").
		WithArgs("c1").
		WillReturnRows(getByIDRows("u1", nil))

	if err := repo.SoftDelete(context.Background(), "c1", "u2", false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSoftDeleteByAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE id = ?").
		WithArgs("c1").
		WillReturnRows(getByIDRows("u1", nil))
	mock.ExpectExec("UPDATE comments SET deleted_at").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SoftDelete(context.Background(), "c1", "someone-else", true); err != nil {
		t.Fatalf("SoftDelete() as admin error: %v", err)
	}
}

func TestSoftDeleteAlreadyDeletedIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE id = ?").
		WithArgs("c1").
		WillReturnRows(getByIDRows("u1", time.Now().UTC()))

	// No UPDATE expected.
	if err := repo.SoftDelete(context.Background(), "c1", "u1", false); err != nil {
		t.Fatalf("SoftDelete() on tombstone error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSoftDeleteMissingComment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewCommentRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE id = ?").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if err := repo.SoftDelete(context.Background(), "missing", "u1", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
