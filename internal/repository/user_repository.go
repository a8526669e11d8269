package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mardelta/portfolio-api/internal/model"
)

// UserRepo stores profiles of visitors who signed in via SSO.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = "id, email, name, avatar_url, provider, provider_id, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*model.UserProfile, error) {
	var (
		u      model.UserProfile
		avatar sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &avatar, &u.Provider, &u.ProviderID,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.AvatarURL = avatar.String
	return &u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = "SELECT " + userColumns + " FROM user_profiles WHERE email = ? LIMIT 1"
	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	const q = "SELECT " + userColumns + " FROM user_profiles WHERE id = ? LIMIT 1"
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Upsert stores the identity returned by an SSO callback. Rows are keyed by
// email: an existing row gets its name and avatar overwritten while the
// original provider identity fields are preserved; otherwise a new row is
// inserted. Returns the stored profile.
func (r *UserRepo) Upsert(ctx context.Context, u model.UserProfile) (*model.UserProfile, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()

	// A single statement keyed on the email UNIQUE column so concurrent first
	// sign-ins for the same address cannot race a check-then-insert. The
	// update clause deliberately leaves provider and provider_id alone.
	const q = `INSERT INTO user_profiles
	           (id, email, name, avatar_url, provider, provider_id, created_at, updated_at)
	           VALUES (?,?,?,?,?,?,?,?)
	           ON DUPLICATE KEY UPDATE
	           name = VALUES(name), avatar_url = VALUES(avatar_url), updated_at = VALUES(updated_at)`
	if _, err := r.db.ExecContext(ctx, q, uuid.NewString(), u.Email, u.Name, nullable(u.AvatarURL),
		u.Provider, u.ProviderID, now, now); err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, u.Email)
}
