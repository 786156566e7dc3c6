package identity

// Role is the access level carried in tokens and employee rows.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Actor identifies who is performing an operation. It is built from the
// verified token claims and passed explicitly into service calls.
type Actor struct {
	EmployeeID string
	Role       Role
	Name       string
	Email      string
}

// IsAdmin reports whether the actor has administrative access.
func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}
