package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave and see everyone's attendance
	RoleEmployee Role = "employee" // Regular employee
)

// Principal is the authenticated caller as read from the access token.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// IsManager checks if the caller is manager or owner
func (p Principal) IsManager() bool {
	return p.Role == RoleManager || p.Role == RoleOwner
}

// HasEmployee reports whether the caller is linked to an employee record.
func (p Principal) HasEmployee() bool {
	return p.EmployeeID != ""
}
