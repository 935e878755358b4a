package domain

// Role is the capability class of the caller, resolved outside the core.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// Identity is the caller of a core operation. For customers ID is the CIF,
// for staff it is the PF number.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsStaff reports whether the identity acts on behalf of the bank.
func (i Identity) IsStaff() bool {
	return i.Role == RoleAdmin || i.Role == RoleEmployee
}

// IsAdmin reports whether the identity holds the administrator capability.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// SystemIdentity is used by scheduled jobs running inside the service.
func SystemIdentity() Identity {
	return Identity{ID: "system", Role: RoleAdmin}
}
