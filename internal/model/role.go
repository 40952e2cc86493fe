package model

// Capability names a permission derived from an account's role. The
// original system computed ad-hoc boolean flags per request; here the
// mapping is a single pure function so handlers and middleware share one
// source of truth.
type Capability string

const (
    // CapOperateThemes covers day-to-day floor work: check-in,
    // completion, no-show marking, issue reporting and toggling a theme
    // between Ready and Maintenance.
    CapOperateThemes Capability = "operate_themes"
    // CapManageBranch covers branch-level administration: revenue stats,
    // staff schedules and theme pricing updates.
    CapManageBranch Capability = "manage_branch"
    // CapAdmin covers venue-wide administration such as publishing
    // notices.
    CapAdmin Capability = "admin"
)

// CapabilitiesOf returns the capability set for a role. Unknown roles
// (including customers) get an empty set. The returned map is freshly
// allocated so callers may not mutate shared state through it.
func CapabilitiesOf(role string) map[Capability]bool {
    caps := make(map[Capability]bool, 3)
    switch role {
    case RoleThemeManager:
        caps[CapOperateThemes] = true
    case RoleBranchManager:
        caps[CapOperateThemes] = true
        caps[CapManageBranch] = true
    case RoleAdmin:
        caps[CapOperateThemes] = true
        caps[CapManageBranch] = true
        caps[CapAdmin] = true
    }
    return caps
}

// HasCapability reports whether the role grants the capability.
func HasCapability(role string, cap Capability) bool {
    return CapabilitiesOf(role)[cap]
}

// IsStaff reports whether the role may enter the manager surface at all.
func IsStaff(role string) bool {
    return HasCapability(role, CapOperateThemes)
}
