package auth

import "strings"

// Role is the portal role carried by the session user.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// ParseRole normalises a role string. Unknown or empty roles fall back to student.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleFaculty:
		return RoleFaculty
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// Permissions is the capability set resolved for a role.
type Permissions struct {
	CanManage bool // create and edit events, announcements and timetable slots
	IsAdmin   bool // delete anything that can be deleted
}

// PermissionsFor resolves the capabilities of a role.
func PermissionsFor(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{CanManage: true, IsAdmin: true}
	case RoleFaculty:
		return Permissions{CanManage: true}
	default:
		return Permissions{}
	}
}

// Class is a UI visibility class attached to role-specific elements.
type Class string

const (
	ClassFacultyOnly Class = "faculty-only"
	ClassStudentOnly Class = "student-only"
	ClassAdminOnly   Class = "admin-only"
)

// Classes lists every visibility class.
var Classes = []Class{ClassFacultyOnly, ClassStudentOnly, ClassAdminOnly}

// VisibleTo reports whether elements of class c are shown to role.
// Elements outside the known classes are always visible.
func (c Class) VisibleTo(role Role) bool {
	switch c {
	case ClassFacultyOnly:
		return role == RoleFaculty || role == RoleAdmin
	case ClassStudentOnly:
		return role == RoleStudent
	case ClassAdminOnly:
		return role == RoleAdmin
	default:
		return true
	}
}

// VisibilityFor computes the visibility of every class for role.
func VisibilityFor(role Role) map[Class]bool {
	out := make(map[Class]bool, len(Classes))
	for _, c := range Classes {
		out[c] = c.VisibleTo(role)
	}
	return out
}
