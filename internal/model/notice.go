package model

import "time"

// Notice is an announcement written by an admin. TargetBranchID is nil
// for venue-wide notices. Corresponds to a row in the `notices` table.
type Notice struct {
    ID             uint64    // notices.id
    AccountID      *uint64   // notices.account_id (nullable)
    Title          string    // notices.title
    Content        string    // notices.content
    TargetBranchID *uint64   // notices.target_branch_id (nullable)
    CreatedAt      time.Time // notices.created_at
}
