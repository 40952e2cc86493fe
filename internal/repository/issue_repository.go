package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/minjae/escape-room-booking/internal/model"
)

// IssueRepo persists facility problem reports filed by staff.
type IssueRepo struct{ db *sql.DB }

func NewIssueRepo(db *sql.DB) *IssueRepo { return &IssueRepo{db: db} }

// Create inserts a report in the Reported state and returns its ID.
func (r *IssueRepo) Create(ctx context.Context, themeID, reporterID uint64, description string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO issue_reports (theme_id, reporter_id, description, status) VALUES (?,?,?,?)",
		themeID, reporterID, description, model.IssueReported)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateStatus moves a report along Reported → InProgress → Resolved.
// The caller validates the status string.
func (r *IssueRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE issue_reports SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// IssueDetail is a report joined with theme and reporter names.
type IssueDetail struct {
	ID           uint64  `json:"id"`
	ThemeID      uint64  `json:"theme_id"`
	ThemeName    string  `json:"theme_name"`
	ReporterName *string `json:"reporter_name,omitempty"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	ReportedAt   string  `json:"reported_at"`
}

// ListOpen returns unresolved reports, newest first, up to limit.
func (r *IssueRepo) ListOpen(ctx context.Context, limit int) ([]IssueDetail, error) {
	const q = `SELECT i.id, i.theme_id, t.name, a.name, i.description, i.status, i.reported_at
	           FROM issue_reports i
	           JOIN themes t ON t.id = i.theme_id
	           LEFT JOIN accounts a ON a.id = i.reporter_id
	           WHERE i.status IN ('Reported','InProgress')
	           ORDER BY i.reported_at DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]IssueDetail, 0, limit)
	for rows.Next() {
		var (
			d        IssueDetail
			reporter sql.NullString
			reported time.Time
		)
		if err := rows.Scan(&d.ID, &d.ThemeID, &d.ThemeName, &reporter,
			&d.Description, &d.Status, &reported); err != nil {
			return nil, err
		}
		if reporter.Valid {
			v := reporter.String
			d.ReporterName = &v
		}
		d.ReportedAt = reported.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	return out, rows.Err()
}
