package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mardelta/portfolio-api/internal/model"
)

// StatusRepo stores client status-check pings.
type StatusRepo struct {
	db *sql.DB
}

// NewStatusRepo constructs a StatusRepo with the provided DB handle.
func NewStatusRepo(db *sql.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// Create inserts a status check. ID and timestamp are assigned here.
func (r *StatusRepo) Create(ctx context.Context, s *model.StatusCheck) error {
	s.ID = uuid.NewString()
	s.Timestamp = time.Now().UTC()
	const q = "INSERT INTO status_checks (id, client_name, timestamp) VALUES (?,?,?)"
	_, err := r.db.ExecContext(ctx, q, s.ID, s.ClientName, s.Timestamp)
	return err
}

// ListAll returns every status check, newest first.
func (r *StatusRepo) ListAll(ctx context.Context) ([]model.StatusCheck, error) {
	const q = "SELECT id, client_name, timestamp FROM status_checks ORDER BY timestamp DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.StatusCheck{}
	for rows.Next() {
		var s model.StatusCheck
		if err := rows.Scan(&s.ID, &s.ClientName, &s.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
