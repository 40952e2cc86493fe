package model

// Theme represents a single escape-room scenario offered at a branch.
// Themes carry their own pricing and operational status. This struct
// corresponds to a row in the `themes` table.
//
// Fields:
//  ID           – primary key identifier.
//  BranchID     – branch offering this theme.
//  Name         – theme name.
//  Genre        – genre label (horror, mystery, ...).
//  Difficulty   – difficulty rating from 1 to 5.
//  DurationMin  – session length in minutes.
//  Price        – per-participant price in won.
//  DiscountRate – advertised discount percentage. Stored only; the
//                 booking flow prices reservations from Price alone.
//  Description  – free-form description shown on the detail page.
//  IsActive     – whether the theme is listed at all.
//  Status       – Ready or Maintenance.
type Theme struct {
    ID           uint64  // themes.id
    BranchID     uint64  // themes.branch_id
    Name         string  // themes.name
    Genre        string  // themes.genre
    Difficulty   int     // themes.difficulty
    DurationMin  int     // themes.duration_min
    Price        int64   // themes.price
    DiscountRate float64 // themes.discount_rate
    Description  string  // themes.description
    IsActive     bool    // themes.is_active
    Status       string  // themes.status
}

// Theme operational statuses.
const (
    ThemeReady       = "Ready"
    ThemeMaintenance = "Maintenance"
)

// Bookable reports whether new reservations may be created for the theme.
func (t *Theme) Bookable() bool {
    return t.IsActive && t.Status == ThemeReady
}
