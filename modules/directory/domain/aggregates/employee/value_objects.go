package employee

import "errors"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func NewRole(r string) (Role, error) {
	role := Role(r)
	if !role.IsValid() {
		return "", errors.New("invalid role")
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsAdmin is the single capability gate of the console: admin sessions may
// delete records and change role/active flags, everyone else may not.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Suggestion is a proposed login together with its availability at generation
// time. Availability is authoritative only at that moment; the personnel API
// re-checks uniqueness on create.
type Suggestion struct {
	Login     string
	Available bool
}
