package models

import "fmt"

// Role is the closed set of account roles. Keeping it an enum (rather than
// raw strings) forces every switch to handle the full set.
type Role int

const (
	RoleUnknown Role = iota
	RolePatient
	RoleStaff
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "patient":
		return RolePatient, nil
	case "staff":
		return RoleStaff, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RolePatient:
		return "patient"
	case RoleStaff:
		return "staff"
	default:
		return "unknown"
	}
}

// HomePath is where a signed-in user of this role is sent when they hit a
// view their role is not allowed to see.
func (r Role) HomePath() string {
	switch r {
	case RolePatient:
		return "/patient/home"
	case RoleStaff:
		return "/staff/dashboard"
	default:
		return "/login"
	}
}
