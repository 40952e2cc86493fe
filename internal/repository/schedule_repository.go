package repository

import (
	"context"
	"database/sql"
	"time"
)

// ScheduleRepo persists staff work shifts.
type ScheduleRepo struct{ db *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// Create inserts a shift and returns its ID. Start and end times are
// "HH:MM:SS" strings matching the TIME columns.
func (r *ScheduleRepo) Create(ctx context.Context, accountID, branchID uint64, workDate time.Time, startTime, endTime string, assignedThemeID *uint64) (uint64, error) {
	var theme sql.NullInt64
	if assignedThemeID != nil {
		theme = sql.NullInt64{Int64: int64(*assignedThemeID), Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO schedules (account_id, branch_id, work_date, start_time, end_time, assigned_theme_id)
		 VALUES (?,?,?,?,?,?)`,
		accountID, branchID, workDate.Format("2006-01-02"), startTime, endTime, theme)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ScheduleDetail is a shift joined with the names a manager wants to see
// on the weekly board.
type ScheduleDetail struct {
	ID            uint64  `json:"id"`
	AccountName   string  `json:"account_name"`
	BranchName    string  `json:"branch_name"`
	WorkDate      string  `json:"work_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	AssignedTheme *string `json:"assigned_theme,omitempty"`
}

// ListBetween returns shifts with work_date in [from, to], ordered by
// date then start time.
func (r *ScheduleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]ScheduleDetail, error) {
	const q = `SELECT s.id, a.name, b.name, s.work_date, s.start_time, s.end_time, t.name
	           FROM schedules s
	           JOIN accounts a ON a.id = s.account_id
	           JOIN branches b ON b.id = s.branch_id
	           LEFT JOIN themes t ON t.id = s.assigned_theme_id
	           WHERE s.work_date >= ? AND s.work_date <= ?
	           ORDER BY s.work_date, s.start_time`
	rows, err := r.db.QueryContext(ctx, q, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ScheduleDetail, 0)
	for rows.Next() {
		var (
			d        ScheduleDetail
			workDate time.Time
			theme    sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.AccountName, &d.BranchName, &workDate,
			&d.StartTime, &d.EndTime, &theme); err != nil {
			return nil, err
		}
		d.WorkDate = workDate.Format("2006-01-02")
		if theme.Valid {
			v := theme.String
			d.AssignedTheme = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
