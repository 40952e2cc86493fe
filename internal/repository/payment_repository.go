package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/minjae/escape-room-booking/internal/model"
)

// PaymentRepo persists the stub payment records created alongside
// reservations and aggregates them for revenue reporting.
type PaymentRepo struct{ db *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts the payment row tied 1:1 to a reservation, inside the
// same transaction that created the reservation. The stub always records
// a Paid virtual-card payment.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, reservationID uint64, amount int64) error {
	const q = `INSERT INTO payments (reservation_id, method, amount, status)
	           VALUES (?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, reservationID, model.VirtualCardMethod, amount, model.PaymentPaid)
	return err
}

// GetByReservation fetches the payment for a reservation.
func (r *PaymentRepo) GetByReservation(ctx context.Context, reservationID uint64) (model.Payment, error) {
	const q = `SELECT id, reservation_id, method, amount, status, paid_at
	           FROM payments WHERE reservation_id = ? LIMIT 1`
	var p model.Payment
	err := r.db.QueryRowContext(ctx, q, reservationID).Scan(&p.ID, &p.ReservationID,
		&p.Method, &p.Amount, &p.Status, &p.PaidAt)
	return p, err
}

// BranchRevenue is one branch's aggregated Paid payments for a period.
type BranchRevenue struct {
	BranchID   uint64 `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Total      int64  `json:"total_sales"`
	Count      int64  `json:"reservation_count"`
	Average    int64  `json:"avg_sales"`
}

// MonthlyBranchRevenue sums Paid payments per active branch with paid_at
// inside [from, to). Branches with no payments appear with zeros; the
// average is computed in Go so an empty month cannot divide by zero.
func (r *PaymentRepo) MonthlyBranchRevenue(ctx context.Context, from, to time.Time) ([]BranchRevenue, error) {
	const q = `SELECT b.id, b.name,
	                  COALESCE(SUM(p.amount), 0) AS total,
	                  COUNT(p.id)                AS cnt
	           FROM branches b
	           LEFT JOIN themes t        ON t.branch_id = b.id
	           LEFT JOIN reservations rs ON rs.theme_id = t.id
	           LEFT JOIN payments p      ON p.reservation_id = rs.id
	                AND p.status = 'Paid' AND p.paid_at >= ? AND p.paid_at < ?
	           WHERE b.is_active = TRUE
	           GROUP BY b.id, b.name
	           ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BranchRevenue, 0)
	for rows.Next() {
		var br BranchRevenue
		if err := rows.Scan(&br.BranchID, &br.BranchName, &br.Total, &br.Count); err != nil {
			return nil, err
		}
		br.Average = avgAmount(br.Total, br.Count)
		out = append(out, br)
	}
	return out, rows.Err()
}

// avgAmount is the zero-safe integer average used for revenue reports.
func avgAmount(total, count int64) int64 {
	if count <= 0 {
		return 0
	}
	return total / count
}
