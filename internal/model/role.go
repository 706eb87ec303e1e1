package model

import "fmt"

// Role is the closed set of user roles. The zero value is not a valid role.
type Role int

const (
	// RoleTeacher can create courses and lessons
	RoleTeacher Role = iota + 1

	// RoleStudent watches lessons and records progress
	RoleStudent
)

// Stored role names
const (
	RoleNameTeacher = "teacher"
	RoleNameStudent = "student"
)

// AllRoles lists every role in display order
var AllRoles = []Role{RoleTeacher, RoleStudent}

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case RoleNameTeacher:
		return RoleTeacher, nil
	case RoleNameStudent:
		return RoleStudent, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// String returns the stored name of the role
func (r Role) String() string {
	switch r {
	case RoleTeacher:
		return RoleNameTeacher
	case RoleStudent:
		return RoleNameStudent
	default:
		return "unknown"
	}
}

// IsValid reports whether r is one of the declared roles
func (r Role) IsValid() bool {
	switch r {
	case RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// CanAuthor reports whether the role may create and edit courses and lessons.
func (r Role) CanAuthor() bool {
	switch r {
	case RoleTeacher:
		return true
	case RoleStudent:
		return false
	default:
		return false
	}
}

// TracksProgress reports whether lesson completion is recorded for the role.
func (r Role) TracksProgress() bool {
	switch r {
	case RoleTeacher:
		return false
	case RoleStudent:
		return true
	default:
		return false
	}
}
