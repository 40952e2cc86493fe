package model

// BranchAssignment links a staff account to a branch it is responsible
// for. Branch managers administer only their assigned branches; the
// assignments themselves are maintained by back-office tooling. This
// struct corresponds to a row in the `branch_assignments` table.
type BranchAssignment struct {
    ID        uint64 // branch_assignments.id
    AccountID uint64 // branch_assignments.account_id
    BranchID  uint64 // branch_assignments.branch_id
}

// BranchScopeAllows reports whether a staff member may administer the
// given branch. Admins are unrestricted; branch managers act only on
// branches they are assigned to. Every other role is refused outright,
// assignment or not.
func BranchScopeAllows(role string, assigned bool) bool {
    if role == RoleAdmin {
        return true
    }
    return role == RoleBranchManager && assigned
}
