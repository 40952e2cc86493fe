package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/minjae/escape-room-booking/internal/model"
)

// ReviewRepo persists customer reviews. Each reservation carries at most
// one review, enforced both here and by a unique index on
// reviews.reservation_id.
type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and returns its ID. A duplicate for the same
// reservation yields ErrConflict.
func (r *ReviewRepo) Create(ctx context.Context, reservationID, accountID uint64, rating int, comment string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (reservation_id, account_id, rating, comment) VALUES (?,?,?,?)",
		reservationID, accountID, rating, comment)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a review row.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	const q = `SELECT id, reservation_id, account_id, rating, comment, created_at
	           FROM reviews WHERE id = ? LIMIT 1`
	var (
		rv        model.Review
		accountID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rv.ID, &rv.ReservationID,
		&accountID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		return rv, err
	}
	if accountID.Valid {
		v := uint64(accountID.Int64)
		rv.AccountID = &v
	}
	return rv, nil
}

// IDByReservation returns the review ID for a reservation, or
// sql.ErrNoRows when none exists. Creation redirects to update through
// this lookup.
func (r *ReviewRepo) IDByReservation(ctx context.Context, reservationID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM reviews WHERE reservation_id=? LIMIT 1", reservationID).Scan(&id)
	return id, err
}

// Update replaces the rating and comment of an existing review.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, rating int, comment string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=? WHERE id=?", rating, comment, id)
	return err
}

// Delete removes a review. Ownership is checked by the handler before
// calling.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	return err
}

// ReviewDetail is a review joined with its author name, shown on the
// theme detail page and my-page.
type ReviewDetail struct {
	ID            uint64  `json:"id"`
	ReservationID uint64  `json:"reservation_id"`
	AccountName   *string `json:"account_name,omitempty"`
	Rating        int     `json:"rating"`
	Comment       string  `json:"comment"`
	CreatedAt     string  `json:"created_at"`
}

func scanReviewDetails(rows *sql.Rows) ([]ReviewDetail, error) {
	out := make([]ReviewDetail, 0)
	for rows.Next() {
		var (
			d       ReviewDetail
			name    sql.NullString
			created time.Time
		)
		if err := rows.Scan(&d.ID, &d.ReservationID, &name, &d.Rating, &d.Comment, &created); err != nil {
			return nil, err
		}
		if name.Valid {
			v := name.String
			d.AccountName = &v
		}
		d.CreatedAt = created.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByTheme returns all reviews written against a theme's
// reservations, newest first.
func (r *ReviewRepo) ListByTheme(ctx context.Context, themeID uint64) ([]ReviewDetail, error) {
	const q = `SELECT v.id, v.reservation_id, a.name, v.rating, v.comment, v.created_at
	           FROM reviews v
	           JOIN reservations r ON r.id = v.reservation_id
	           LEFT JOIN accounts a ON a.id = v.account_id
	           WHERE r.theme_id = ?
	           ORDER BY v.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, themeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviewDetails(rows)
}

// ListByAccount returns the account's own reviews, newest first.
func (r *ReviewRepo) ListByAccount(ctx context.Context, accountID uint64) ([]ReviewDetail, error) {
	const q = `SELECT v.id, v.reservation_id, a.name, v.rating, v.comment, v.created_at
	           FROM reviews v
	           LEFT JOIN accounts a ON a.id = v.account_id
	           WHERE v.account_id = ?
	           ORDER BY v.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviewDetails(rows)
}
