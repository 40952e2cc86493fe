package repository

import (
	"context"
	"database/sql"

	"github.com/minjae/escape-room-booking/internal/model"
)

// BranchRepo provides read access to venue branches. Branch records are
// maintained by back-office tooling; the API only lists and references
// them.
type BranchRepo struct{ db *sql.DB }

func NewBranchRepo(db *sql.DB) *BranchRepo { return &BranchRepo{db: db} }

// ListActive returns all active branches ordered by name.
func (r *BranchRepo) ListActive(ctx context.Context) ([]model.Branch, error) {
	const q = `SELECT id, name, location, phone, is_active
	           FROM branches WHERE is_active = TRUE ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Branch, 0)
	for rows.Next() {
		var b model.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Location, &b.Phone, &b.IsActive); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a single branch.
func (r *BranchRepo) GetByID(ctx context.Context, id uint64) (model.Branch, error) {
	var b model.Branch
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, location, phone, is_active FROM branches WHERE id=? LIMIT 1",
		id).Scan(&b.ID, &b.Name, &b.Location, &b.Phone, &b.IsActive)
	return b, err
}

// FirstActive returns the active branch with the lowest ID. Schedule
// creation falls back to it when no branch is supplied.
func (r *BranchRepo) FirstActive(ctx context.Context) (model.Branch, error) {
	var b model.Branch
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, location, phone, is_active FROM branches WHERE is_active = TRUE ORDER BY id LIMIT 1").
		Scan(&b.ID, &b.Name, &b.Location, &b.Phone, &b.IsActive)
	return b, err
}
