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

// AboutRepo manages the single about-profile row.
type AboutRepo struct {
	db *sql.DB
}

// NewAboutRepo constructs an AboutRepo with the provided DB handle.
func NewAboutRepo(db *sql.DB) *AboutRepo {
	return &AboutRepo{db: db}
}

const aboutColumns = "id, name, title, bio, email, location, skills, social, dog, profile_image, created_at, updated_at"

func scanAboutProfile(row interface{ Scan(...any) error }) (*model.AboutProfile, error) {
	var (
		p                       model.AboutProfile
		skillsRaw, socialRaw    []byte
		dogRaw                  []byte
		profileImage            sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Title, &p.Bio, &p.Email, &p.Location,
		&skillsRaw, &socialRaw, &dogRaw, &profileImage, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(skillsRaw, &p.Skills); err != nil {
		return nil, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if err := unmarshalJSON(socialRaw, &p.Social); err != nil {
		return nil, err
	}
	if len(dogRaw) > 0 && string(dogRaw) != "null" {
		var dog model.DogProfile
		if err := unmarshalJSON(dogRaw, &dog); err != nil {
			return nil, err
		}
		p.Dog = &dog
	}
	p.ProfileImage = profileImage.String
	return &p, nil
}

// Get returns the about profile, or ErrNotFound when none is configured.
func (r *AboutRepo) Get(ctx context.Context) (*model.AboutProfile, error) {
	const q = "SELECT " + aboutColumns + " FROM about_profiles LIMIT 1"
	p, err := scanAboutProfile(r.db.QueryRowContext(ctx, q))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetByID returns the profile with the given id.
func (r *AboutRepo) GetByID(ctx context.Context, id string) (*model.AboutProfile, error) {
	const q = "SELECT " + aboutColumns + " FROM about_profiles WHERE id = ?"
	p, err := scanAboutProfile(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts the about profile. Only one row may exist; a second create
// fails with ErrAlreadyExists.
func (r *AboutRepo) Create(ctx context.Context, p *model.AboutProfile) error {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM about_profiles").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrAlreadyExists
	}

	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	skills, err := marshalJSON(p.Skills)
	if err != nil {
		return err
	}
	social, err := marshalJSON(p.Social)
	if err != nil {
		return err
	}
	var dog any
	if p.Dog != nil {
		raw, err := marshalJSON(*p.Dog)
		if err != nil {
			return err
		}
		dog = raw
	}
	const q = `INSERT INTO about_profiles
	           (id, name, title, bio, email, location, skills, social, dog, profile_image, created_at, updated_at)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q, p.ID, p.Name, p.Title, p.Bio, p.Email, p.Location,
		skills, social, dog, nullable(p.ProfileImage), p.CreatedAt, p.UpdatedAt)
	return err
}

// Update applies the non-nil fields of upd and returns the fresh record.
func (r *AboutRepo) Update(ctx context.Context, id string, upd model.AboutProfileUpdate) (*model.AboutProfile, error) {
	sets := []string{}
	args := []any{}
	appendSet := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Name != nil {
		appendSet("name", *upd.Name)
	}
	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Bio != nil {
		appendSet("bio", *upd.Bio)
	}
	if upd.Email != nil {
		appendSet("email", *upd.Email)
	}
	if upd.Location != nil {
		appendSet("location", *upd.Location)
	}
	if upd.Skills != nil {
		skills, err := marshalJSON(*upd.Skills)
		if err != nil {
			return nil, err
		}
		appendSet("skills", skills)
	}
	if upd.Social != nil {
		social, err := marshalJSON(*upd.Social)
		if err != nil {
			return nil, err
		}
		appendSet("social", social)
	}
	if upd.Dog != nil {
		dog, err := marshalJSON(*upd.Dog)
		if err != nil {
			return nil, err
		}
		appendSet("dog", dog)
	}
	if upd.ProfileImage != nil {
		appendSet("profile_image", nullable(*upd.ProfileImage))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	appendSet("updated_at", time.Now().UTC())
	args = append(args, id)

	q := "UPDATE about_profiles SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the profile, returning ErrNotFound when nothing was deleted.
func (r *AboutRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM about_profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
