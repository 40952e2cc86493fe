package model

import "time"

// Schedule is a staff work shift at a branch, optionally tied to a theme
// the member runs that day. Corresponds to a row in the `schedules`
// table. WorkDate carries the calendar day; StartTime and EndTime hold
// the shift boundaries as "HH:MM:SS" strings, matching the TIME columns.
type Schedule struct {
    ID              uint64    // schedules.id
    AccountID       uint64    // schedules.account_id
    BranchID        uint64    // schedules.branch_id
    WorkDate        time.Time // schedules.work_date
    StartTime       string    // schedules.start_time
    EndTime         string    // schedules.end_time
    AssignedThemeID *uint64   // schedules.assigned_theme_id (nullable)
}
