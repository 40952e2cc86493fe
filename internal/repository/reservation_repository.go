package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/minjae/escape-room-booking/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. A
// reservation binds an account to a (theme, slot) pair; its status column
// is the only thing that ever changes after creation. All timestamp
// fields are stored in UTC.
type ReservationRepo struct{ db *sql.DB }

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can run multi-repository
// transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRecord mirrors the schema of the reservations table. It is
// used by the repository when constructing rows; business logic should
// use model.Reservation instead.
type ReservationRecord struct {
	ID           uint64
	AccountID    uint64
	ThemeID      uint64
	SlotTime     time.Time
	Participants int
	TotalPrice   int64
	Status       string
	CreatedAt    time.Time
}

// EnsureSlotFreeTx returns ErrSlotTaken when a Confirmed or CheckedIn
// reservation already occupies the theme/slot pair. The SELECT runs FOR
// UPDATE so that two concurrent bookings of the same slot serialize
// inside their transactions and at most one goes on to insert. No unique
// index backs this up: a slot may legitimately accumulate any number of
// Cancelled/Completed/NoShow rows, so a plain unique key over
// (theme_id, slot_time, status) would reject legal status updates. A
// schema wanting belt-and-braces can add a generated column that holds
// the slot key only while the row blocks the slot and is NULL otherwise.
func (r *ReservationRepo) EnsureSlotFreeTx(ctx context.Context, tx *sql.Tx, themeID uint64, slot time.Time) error {
	const q = `SELECT id FROM reservations
	           WHERE theme_id = ? AND slot_time = ? AND status IN ('Confirmed','CheckedIn')
	           LIMIT 1 FOR UPDATE`
	var id uint64
	err := tx.QueryRowContext(ctx, q, themeID, slot).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	return ErrSlotTaken
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and creation timestamp on
// the provided record. The caller must commit or rollback.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *ReservationRecord) error {
	const q = `INSERT INTO reservations (account_id, theme_id, slot_time, participants, total_price, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rec.AccountID, rec.ThemeID, rec.SlotTime,
		rec.Participants, rec.TotalPrice, rec.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM reservations WHERE id = ?", rec.ID).Scan(&rec.CreatedAt)
}

// GetByID fetches a reservation row.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT id, account_id, theme_id, slot_time, participants, total_price,
	                  status, hint_count, is_success, clear_time_sec, created_at
	           FROM reservations WHERE id = ? LIMIT 1`
	var (
		res       model.Reservation
		accountID sql.NullInt64
		success   sql.NullBool
		clearSec  sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&res.ID, &accountID, &res.ThemeID,
		&res.SlotTime, &res.Participants, &res.TotalPrice, &res.Status,
		&res.HintCount, &success, &clearSec, &res.CreatedAt)
	if err != nil {
		return res, err
	}
	if accountID.Valid {
		v := uint64(accountID.Int64)
		res.AccountID = &v
	}
	if success.Valid {
		v := success.Bool
		res.IsSuccess = &v
	}
	if clearSec.Valid {
		v := int(clearSec.Int64)
		res.ClearTimeSec = &v
	}
	return res, nil
}

// GetOwned fetches a reservation and verifies the caller owns it,
// returning ErrForbidden otherwise.
func (r *ReservationRepo) GetOwned(ctx context.Context, id, accountID uint64) (model.Reservation, error) {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return res, err
	}
	if res.AccountID == nil || *res.AccountID != accountID {
		return res, ErrForbidden
	}
	return res, nil
}

// UpdateStatusIf transitions a reservation from one status to another
// atomically. It returns false when the row was not in the expected
// status, leaving it untouched.
func (r *ReservationRepo) UpdateStatusIf(ctx context.Context, id uint64, from, to string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=? AND status=?", to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Complete marks a reservation Completed and records the session
// results. No status precondition is applied; completion overrides
// whatever state the row is in.
func (r *ReservationRepo) Complete(ctx context.Context, id uint64, hintCount int, isSuccess bool, clearTimeSec *int) error {
	var clear sql.NullInt64
	if clearTimeSec != nil {
		clear = sql.NullInt64{Int64: int64(*clearTimeSec), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status=?, hint_count=?, is_success=?, clear_time_sec=? WHERE id=?`,
		model.ReservationCompleted, hintCount, isSuccess, clear, id)
	return err
}

// ReservationDetail is a reservation row joined with its theme and
// branch, as shown on my-page and the staff dashboard.
type ReservationDetail struct {
	ID           uint64  `json:"id"`
	AccountID    *uint64 `json:"account_id,omitempty"`
	AccountName  *string `json:"account_name,omitempty"`
	ThemeID      uint64  `json:"theme_id"`
	ThemeName    string  `json:"theme_name"`
	BranchName   string  `json:"branch_name"`
	SlotTime     string  `json:"slot_time"`
	Participants int     `json:"participants"`
	TotalPrice   int64   `json:"total_price"`
	Status       string  `json:"status"`
	HintCount    int     `json:"hint_count"`
	IsSuccess    *bool   `json:"is_success,omitempty"`
	ClearTimeSec *int    `json:"clear_time_sec,omitempty"`
}

func scanDetails(rows *sql.Rows) ([]ReservationDetail, error) {
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var (
			d         ReservationDetail
			accountID sql.NullInt64
			name      sql.NullString
			slot      time.Time
			success   sql.NullBool
			clearSec  sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &accountID, &name, &d.ThemeID, &d.ThemeName,
			&d.BranchName, &slot, &d.Participants, &d.TotalPrice, &d.Status,
			&d.HintCount, &success, &clearSec); err != nil {
			return nil, err
		}
		if accountID.Valid {
			v := uint64(accountID.Int64)
			d.AccountID = &v
		}
		if name.Valid {
			v := name.String
			d.AccountName = &v
		}
		d.SlotTime = slot.UTC().Format(time.RFC3339)
		if success.Valid {
			v := success.Bool
			d.IsSuccess = &v
		}
		if clearSec.Valid {
			v := int(clearSec.Int64)
			d.ClearTimeSec = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const detailSelect = `SELECT r.id, r.account_id, a.name, r.theme_id, t.name, b.name,
	       r.slot_time, r.participants, r.total_price, r.status,
	       r.hint_count, r.is_success, r.clear_time_sec
	FROM reservations r
	LEFT JOIN accounts a ON a.id = r.account_id
	JOIN themes t   ON t.id = r.theme_id
	JOIN branches b ON b.id = t.branch_id`

// ListByAccount returns the account's reservations, newest slot first.
func (r *ReservationRepo) ListByAccount(ctx context.Context, accountID uint64) ([]ReservationDetail, error) {
	q := detailSelect + ` WHERE r.account_id = ? ORDER BY r.slot_time DESC`
	rows, err := r.db.QueryContext(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

// ListForRange returns reservations whose slot falls inside [from, to),
// ordered by slot time. The staff dashboard uses a single-day range.
func (r *ReservationRepo) ListForRange(ctx context.Context, from, to time.Time) ([]ReservationDetail, error) {
	q := detailSelect + ` WHERE r.slot_time >= ? AND r.slot_time < ? ORDER BY r.slot_time`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows)
}

// CountByStatus returns the number of reservations per status with slots
// inside [from, to).
func (r *ReservationRepo) CountByStatus(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	const q = `SELECT status, COUNT(*) FROM reservations
	           WHERE slot_time >= ? AND slot_time < ? GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
