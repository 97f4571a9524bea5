package rbac

// Role is the fixed role set of the organization. Hierarchy is not implicit:
// every capability is granted explicitly in the policy table.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "ADMIN"
	RoleCEO      Role = "CEO"
)

func ValidRole(v string) bool {
	switch Role(v) {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin, RoleCEO:
		return true
	default:
		return false
	}
}

// IsAdministrative reports whether the role carries organization-wide
// override rights (used by the approver checks in attendance and leave).
func IsAdministrative(v string) bool {
	return Role(v) == RoleAdmin || Role(v) == RoleCEO
}
