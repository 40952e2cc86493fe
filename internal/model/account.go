package model

import "time"

// Account represents a member record as stored in the `accounts` table.
// Each field corresponds to a column in the database. The json tags are
// omitted here because these structs are primarily used internally by the
// repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the account.
//  LoginID      – unique login handle.
//  Name         – display name.
//  Phone        – unique contact number.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of the Role* constants below.
//  Status       – Active or Suspended; login is refused while Suspended.
//  CreatedAt    – timestamp of registration.
type Account struct {
    ID           uint64    // accounts.id
    LoginID      string    // accounts.login_id
    Name         string    // accounts.name
    Phone        string    // accounts.phone
    PasswordHash string    // accounts.password_hash
    Role         string    // accounts.role
    Status       string    // accounts.status
    CreatedAt    time.Time // accounts.created_at
}

// Roles held by accounts. Customers book and review; the three staff
// roles operate themes, branches and the whole venue respectively.
const (
    RoleCustomer      = "Customer"
    RoleThemeManager  = "ThemeManager"
    RoleBranchManager = "BranchManager"
    RoleAdmin         = "Admin"
)

// Account statuses. Suspended exists so an account can be locked out
// without deleting it; nothing in the API currently suspends one.
const (
    AccountActive    = "Active"
    AccountSuspended = "Suspended"
)

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s string) bool {
    switch s {
    case RoleCustomer, RoleThemeManager, RoleBranchManager, RoleAdmin:
        return true
    }
    return false
}
