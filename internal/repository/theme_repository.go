package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/minjae/escape-room-booking/internal/model"
)

// ThemeRepo provides CRUD and aggregation queries for escape-room themes.
// Listing queries aggregate review ratings transitively through each
// theme's reservations.
type ThemeRepo struct{ db *sql.DB }

func NewThemeRepo(db *sql.DB) *ThemeRepo { return &ThemeRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *ThemeRepo) DB() *sql.DB { return r.db }

// ThemeListItem is a theme row enriched with its branch name and review
// aggregates, as shown on the browse page.
type ThemeListItem struct {
	ID           uint64   `json:"id"`
	BranchID     uint64   `json:"branch_id"`
	BranchName   string   `json:"branch_name"`
	Name         string   `json:"name"`
	Genre        string   `json:"genre"`
	Difficulty   int      `json:"difficulty"`
	DurationMin  int      `json:"duration_min"`
	Price        int64    `json:"price"`
	DiscountRate float64  `json:"discount_rate"`
	AvgRating    *float64 `json:"avg_rating"`
	ReviewCount  int64    `json:"review_count"`
}

// ThemeFilter narrows and orders the browse listing. Sort accepts
// "latest" (default), "rating" and "reviews".
type ThemeFilter struct {
	Search   string
	BranchID uint64
	Sort     string
}

// List returns active, Ready themes matching the filter. Search matches
// name or genre case-insensitively. Rating and review counts come from a
// LEFT JOIN so themes without reviews still appear with a nil rating.
func (r *ThemeRepo) List(ctx context.Context, f ThemeFilter) ([]ThemeListItem, error) {
	where := []string{"t.is_active = TRUE", "t.status = ?"}
	args := []any{model.ThemeReady}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(LOWER(t.name) LIKE ? OR LOWER(t.genre) LIKE ?)")
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat)
	}
	if f.BranchID != 0 {
		where = append(where, "t.branch_id = ?")
		args = append(args, f.BranchID)
	}

	order := "t.id DESC"
	switch f.Sort {
	case "rating":
		order = "avg_rating DESC"
	case "reviews":
		order = "review_count DESC"
	}

	q := `SELECT t.id, t.branch_id, b.name, t.name, t.genre, t.difficulty,
	             t.duration_min, t.price, t.discount_rate,
	             AVG(v.rating) AS avg_rating,
	             COUNT(v.id)   AS review_count
	      FROM themes t
	      JOIN branches b ON b.id = t.branch_id
	      LEFT JOIN reservations r ON r.theme_id = t.id
	      LEFT JOIN reviews v      ON v.reservation_id = r.id
	      WHERE ` + strings.Join(where, " AND ") + `
	      GROUP BY t.id, t.branch_id, b.name, t.name, t.genre, t.difficulty,
	               t.duration_min, t.price, t.discount_rate
	      ORDER BY ` + order

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ThemeListItem, 0)
	for rows.Next() {
		var it ThemeListItem
		var avg sql.NullFloat64
		if err := rows.Scan(&it.ID, &it.BranchID, &it.BranchName, &it.Name, &it.Genre,
			&it.Difficulty, &it.DurationMin, &it.Price, &it.DiscountRate,
			&avg, &it.ReviewCount); err != nil {
			return nil, err
		}
		if avg.Valid {
			v := avg.Float64
			it.AvgRating = &v
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetActive fetches an active theme regardless of Ready/Maintenance
// status. Inactive themes behave as if they do not exist.
func (r *ThemeRepo) GetActive(ctx context.Context, id uint64) (model.Theme, error) {
	const q = `SELECT id, branch_id, name, genre, difficulty, duration_min,
	                  price, discount_rate, description, is_active, status
	           FROM themes WHERE id = ? AND is_active = TRUE LIMIT 1`
	var t model.Theme
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.BranchID, &t.Name, &t.Genre,
		&t.Difficulty, &t.DurationMin, &t.Price, &t.DiscountRate, &t.Description,
		&t.IsActive, &t.Status)
	return t, err
}

// GetByID fetches a theme without the active filter, for staff use.
func (r *ThemeRepo) GetByID(ctx context.Context, id uint64) (model.Theme, error) {
	const q = `SELECT id, branch_id, name, genre, difficulty, duration_min,
	                  price, discount_rate, description, is_active, status
	           FROM themes WHERE id = ? LIMIT 1`
	var t model.Theme
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.BranchID, &t.Name, &t.Genre,
		&t.Difficulty, &t.DurationMin, &t.Price, &t.DiscountRate, &t.Description,
		&t.IsActive, &t.Status)
	return t, err
}

// GetBookableTx loads a theme inside a booking transaction. It returns
// sql.ErrNoRows for missing or inactive themes and ErrConflict when the
// theme exists but is under maintenance.
func (r *ThemeRepo) GetBookableTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Theme, error) {
	const q = `SELECT id, branch_id, name, genre, difficulty, duration_min,
	                  price, discount_rate, description, is_active, status
	           FROM themes WHERE id = ? AND is_active = TRUE LIMIT 1`
	var t model.Theme
	err := tx.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.BranchID, &t.Name, &t.Genre,
		&t.Difficulty, &t.DurationMin, &t.Price, &t.DiscountRate, &t.Description,
		&t.IsActive, &t.Status)
	if err != nil {
		return t, err
	}
	if !t.Bookable() {
		return t, ErrConflict
	}
	return t, nil
}

// ListAll returns every theme ordered by branch then name, for the staff
// dashboard.
func (r *ThemeRepo) ListAll(ctx context.Context) ([]model.Theme, error) {
	const q = `SELECT id, branch_id, name, genre, difficulty, duration_min,
	                  price, discount_rate, description, is_active, status
	           FROM themes ORDER BY branch_id, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Theme, 0)
	for rows.Next() {
		var t model.Theme
		if err := rows.Scan(&t.ID, &t.BranchID, &t.Name, &t.Genre, &t.Difficulty,
			&t.DurationMin, &t.Price, &t.DiscountRate, &t.Description,
			&t.IsActive, &t.Status); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies the branch-manager editable fields: price, discount
// rate, status and active flag.
func (r *ThemeRepo) Update(ctx context.Context, id uint64, price int64, discountRate float64, status string, isActive bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE themes SET price=?, discount_rate=?, status=?, is_active=? WHERE id=?",
		price, discountRate, status, isActive, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		// Either the id is unknown or nothing changed; a follow-up read
		// disambiguates for the handler.
		if _, err2 := r.GetByID(ctx, id); err2 != nil {
			return err2
		}
	}
	return err
}

// ToggleStatus flips a theme between Ready and Maintenance and returns
// the new status.
func (r *ThemeRepo) ToggleStatus(ctx context.Context, id uint64) (string, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	next := model.ThemeMaintenance
	if t.Status == model.ThemeMaintenance {
		next = model.ThemeReady
	}
	if _, err := r.db.ExecContext(ctx, "UPDATE themes SET status=? WHERE id=?", next, id); err != nil {
		return "", err
	}
	return next, nil
}

// TopThemeStat is a row of the monthly top-themes board.
type TopThemeStat struct {
	ThemeID        uint64   `json:"theme_id"`
	ThemeName      string   `json:"theme_name"`
	BranchName     string   `json:"branch_name"`
	CompletedCount int64    `json:"completed_count"`
	AvgRating      *float64 `json:"avg_rating"`
}

// TopCompleted returns the ten themes with the most Completed
// reservations whose slot falls inside [from, to), together with each
// theme's average rating over all completed sessions.
func (r *ThemeRepo) TopCompleted(ctx context.Context, from, to string) ([]TopThemeStat, error) {
	const q = `SELECT t.id, t.name, b.name,
	                  COUNT(DISTINCT CASE WHEN r.status = 'Completed'
	                        AND r.slot_time >= ? AND r.slot_time < ?
	                        THEN r.id END) AS completed_count,
	                  AVG(CASE WHEN r.status = 'Completed' THEN v.rating END) AS avg_rating
	           FROM themes t
	           JOIN branches b ON b.id = t.branch_id
	           LEFT JOIN reservations r ON r.theme_id = t.id
	           LEFT JOIN reviews v      ON v.reservation_id = r.id
	           WHERE t.is_active = TRUE
	           GROUP BY t.id, t.name, b.name
	           ORDER BY completed_count DESC
	           LIMIT 10`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TopThemeStat, 0, 10)
	for rows.Next() {
		var s TopThemeStat
		var avg sql.NullFloat64
		if err := rows.Scan(&s.ThemeID, &s.ThemeName, &s.BranchName, &s.CompletedCount, &avg); err != nil {
			return nil, err
		}
		if avg.Valid {
			v := avg.Float64
			s.AvgRating = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
