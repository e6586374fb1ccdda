package enums

import "fmt"

// Role is an identity-provider role claim.
type Role string

const (
	RoleStaff Role = "Staff"
	RoleAdmin Role = "Admin"
)

var validRoles = []Role{
	RoleStaff,
	RoleAdmin,
}

// StaffRoles are the roles allowed into order management.
var StaffRoles = []Role{RoleStaff, RoleAdmin}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
