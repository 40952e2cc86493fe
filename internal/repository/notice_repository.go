package repository

import (
	"context"
	"database/sql"
	"time"
)

// NoticeRepo persists admin announcements.
type NoticeRepo struct{ db *sql.DB }

func NewNoticeRepo(db *sql.DB) *NoticeRepo { return &NoticeRepo{db: db} }

// Create inserts a notice. targetBranchID nil means a venue-wide notice.
func (r *NoticeRepo) Create(ctx context.Context, accountID uint64, title, content string, targetBranchID *uint64) (uint64, error) {
	var branch sql.NullInt64
	if targetBranchID != nil {
		branch = sql.NullInt64{Int64: int64(*targetBranchID), Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notices (account_id, title, content, target_branch_id) VALUES (?,?,?,?)",
		accountID, title, content, branch)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// NoticeDetail is a notice joined with author and branch names for the
// public listing.
type NoticeDetail struct {
	ID           uint64  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	AuthorName   *string `json:"author_name,omitempty"`
	TargetBranch *string `json:"target_branch,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// List returns all notices, newest first.
func (r *NoticeRepo) List(ctx context.Context) ([]NoticeDetail, error) {
	const q = `SELECT n.id, n.title, n.content, a.name, b.name, n.created_at
	           FROM notices n
	           LEFT JOIN accounts a ON a.id = n.account_id
	           LEFT JOIN branches b ON b.id = n.target_branch_id
	           ORDER BY n.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]NoticeDetail, 0)
	for rows.Next() {
		var (
			d       NoticeDetail
			author  sql.NullString
			branch  sql.NullString
			created time.Time
		)
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &author, &branch, &created); err != nil {
			return nil, err
		}
		if author.Valid {
			v := author.String
			d.AuthorName = &v
		}
		if branch.Valid {
			v := branch.String
			d.TargetBranch = &v
		}
		d.CreatedAt = created.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	return out, rows.Err()
}
