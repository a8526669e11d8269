package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mardelta/portfolio-api/internal/model"
)

const userUpsertPattern = `INSERT INTO user_profiles\s+` +
	`\(id, email, name, avatar_url, provider, provider_id, created_at, updated_at\)\s+` +
	`VALUES \(\?,\?,\?,\?,\?,\?,\?,\?\)\s+` +
	`ON DUPLICATE KEY UPDATE\s+` +
	`name = VALUES\(name\), avatar_url = VALUES\(avatar_url\), updated_at = VALUES\(updated_at\)`

func userRows(email, name, avatar, provider, providerID string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "name", "avatar_url", "provider", "provider_id", "created_at", "updated_at",
	}).AddRow("u-1", email, name, avatar, provider, providerID, now, now)
}

func TestUserUpsertInsertsFreshRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec(userUpsertPattern).
		WithArgs(sqlmock.AnyArg(), "dana@example.com", "Dana", "https://a/img.png",
			"github", "gh-77", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE email = ?").
		WithArgs("dana@example.com").
		WillReturnRows(userRows("dana@example.com", "Dana", "https://a/img.png", "github", "gh-77"))

	got, err := repo.Upsert(context.Background(), model.UserProfile{
		Email:      "  Dana@Example.COM ",
		Name:       "Dana",
		AvatarURL:  "https://a/img.png",
		Provider:   "github",
		ProviderID: "gh-77",
	})
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if got.Email != "dana@example.com" {
		t.Fatalf("email not normalized: %q", got.Email)
	}
	if got.Provider != "github" || got.ProviderID != "gh-77" {
		t.Fatalf("unexpected provider identity %q/%q", got.Provider, got.ProviderID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserUpsertKeepsProviderIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	// The row already exists from a google sign-in. A later github callback
	// for the same address overwrites name and avatar only; the stored
	// provider identity is what comes back.
	mock.ExpectExec(userUpsertPattern).
		WithArgs(sqlmock.AnyArg(), "dana@example.com", "Dana R.", "https://gh/img.png",
			"github", "gh-77", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE email = ?").
		WithArgs("dana@example.com").
		WillReturnRows(userRows("dana@example.com", "Dana R.", "https://gh/img.png", "google", "g-11"))

	got, err := repo.Upsert(context.Background(), model.UserProfile{
		Email:      "dana@example.com",
		Name:       "Dana R.",
		AvatarURL:  "https://gh/img.png",
		Provider:   "github",
		ProviderID: "gh-77",
	})
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if got.Provider != "google" || got.ProviderID != "g-11" {
		t.Fatalf("provider identity was overwritten: %q/%q", got.Provider, got.ProviderID)
	}
	if got.Name != "Dana R." || got.AvatarURL != "https://gh/img.png" {
		t.Fatalf("name/avatar not refreshed: %q %q", got.Name, got.AvatarURL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM user_profiles WHERE email = ?").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
