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

// ProjectRepo encapsulates all database queries for portfolio projects.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo constructs a ProjectRepo with the provided DB handle.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = "id, title, description, category, tags, image, date_label, github, demo, created_at, updated_at"

func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	var (
		p                              model.Project
		tagsRaw                        []byte
		image, dateLabel, github, demo sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &tagsRaw,
		&image, &dateLabel, &github, &demo, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tagsRaw, &p.Tags); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Image = image.String
	p.DateLabel = dateLabel.String
	p.GitHub = github.String
	p.Demo = demo.String
	return &p, nil
}

// ListAll returns every project ordered by creation date descending.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]model.Project, error) {
	const q = "SELECT " + projectColumns + " FROM projects ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single project by id, returning ErrNotFound when absent.
func (r *ProjectRepo) Get(ctx context.Context, id string) (*model.Project, error) {
	const q = "SELECT " + projectColumns + " FROM projects WHERE id = ?"
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new project. ID and timestamps are assigned here.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	tags, err := marshalJSON(p.Tags)
	if err != nil {
		return err
	}
	const q = `INSERT INTO projects
	           (id, title, description, category, tags, image, date_label, github, demo, created_at, updated_at)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q, p.ID, p.Title, p.Description, p.Category, tags,
		nullable(p.Image), nullable(p.DateLabel), nullable(p.GitHub), nullable(p.Demo),
		p.CreatedAt, p.UpdatedAt)
	return err
}

// Update applies the non-nil fields of upd and returns the fresh record.
func (r *ProjectRepo) Update(ctx context.Context, id string, upd model.ProjectUpdate) (*model.Project, error) {
	sets := []string{}
	args := []any{}
	appendSet := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Description != nil {
		appendSet("description", *upd.Description)
	}
	if upd.Category != nil {
		appendSet("category", *upd.Category)
	}
	if upd.Tags != nil {
		tags, err := marshalJSON(*upd.Tags)
		if err != nil {
			return nil, err
		}
		appendSet("tags", tags)
	}
	if upd.Image != nil {
		appendSet("image", nullable(*upd.Image))
	}
	if upd.DateLabel != nil {
		appendSet("date_label", nullable(*upd.DateLabel))
	}
	if upd.GitHub != nil {
		appendSet("github", nullable(*upd.GitHub))
	}
	if upd.Demo != nil {
		appendSet("demo", nullable(*upd.Demo))
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	appendSet("updated_at", time.Now().UTC())
	args = append(args, id)

	q := "UPDATE projects SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes a project, returning ErrNotFound when nothing was deleted.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
