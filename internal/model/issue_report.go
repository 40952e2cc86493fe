package model

import "time"

// IssueReport is a facility problem report filed by staff against a
// theme. Corresponds to a row in the `issue_reports` table.
//
// Fields:
//  ID          – primary key identifier.
//  ThemeID     – theme with the problem.
//  ReporterID  – staff member who filed it (nil once deleted).
//  Description – what is wrong.
//  Status      – Reported, InProgress or Resolved.
//  ReportedAt  – creation timestamp.
type IssueReport struct {
    ID          uint64    // issue_reports.id
    ThemeID     uint64    // issue_reports.theme_id
    ReporterID  *uint64   // issue_reports.reporter_id (nullable)
    Description string    // issue_reports.description
    Status      string    // issue_reports.status
    ReportedAt  time.Time // issue_reports.reported_at
}

// Issue report statuses.
const (
    IssueReported   = "Reported"
    IssueInProgress = "InProgress"
    IssueResolved   = "Resolved"
)

// ValidIssueStatus reports whether s is a known issue status.
func ValidIssueStatus(s string) bool {
    switch s {
    case IssueReported, IssueInProgress, IssueResolved:
        return true
    }
    return false
}
