package repository

import (
	"context"
	"database/sql"
)

// AssignmentRepo reads the staff-to-branch assignment table. Assignments
// are written by back-office tooling; the API only consults them when
// scoping branch-manager actions.
type AssignmentRepo struct{ db *sql.DB }

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// IsAssigned reports whether the account is assigned to the branch.
func (r *AssignmentRepo) IsAssigned(ctx context.Context, accountID, branchID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM branch_assignments WHERE account_id=? AND branch_id=? LIMIT 1",
		accountID, branchID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BranchIDs returns all branches assigned to the account.
func (r *AssignmentRepo) BranchIDs(ctx context.Context, accountID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT branch_id FROM branch_assignments WHERE account_id=? ORDER BY branch_id", accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
