// Package authz decides what a signed-in (or anonymous) principal may
// do. All checks are pure functions over the identity record; nothing
// here performs I/O or mutates state.
package authz

import "github.com/jamal0042/boomPlan/internal/models"

// Role is the client-side role taxonomy. It replaces the remote API's
// numeric role ids at every decision point.
type Role int

const (
	RoleAnonymous Role = iota
	RoleMember
	RoleOrganizer
	RoleAdmin
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleOrganizer:
		return "organizer"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// RoleFromID maps a remote role id onto the client taxonomy. Unknown
// ids map to RoleAnonymous so an unexpected payload never grants access.
func RoleFromID(roleID int) Role {
	switch roleID {
	case models.RoleIDUser:
		return RoleMember
	case models.RoleIDOrganizer:
		return RoleOrganizer
	case models.RoleIDAdmin:
		return RoleAdmin
	default:
		return RoleAnonymous
	}
}

// RoleOf returns the role of an identity, RoleAnonymous for nil.
func RoleOf(user *models.User) Role {
	if user == nil {
		return RoleAnonymous
	}
	return RoleFromID(user.RoleID)
}

// Capability names an action a view may be gated on.
type Capability int

const (
	// CapManageEvents covers creating and editing events and their
	// ticket inventory.
	CapManageEvents Capability = iota
	// CapManageUsers covers the administrative user management surface.
	CapManageUsers
)

// Can reports whether the role grants the capability. Admin is a
// superset of organizer.
func (r Role) Can(c Capability) bool {
	switch c {
	case CapManageEvents:
		return r == RoleOrganizer || r == RoleAdmin
	case CapManageUsers:
		return r == RoleAdmin
	default:
		return false
	}
}

// IsOrganizerOrAdmin reports whether the identity may use
// organizer-gated actions.
func IsOrganizerOrAdmin(user *models.User) bool {
	return RoleOf(user).Can(CapManageEvents)
}

// IsAdmin reports whether the identity may use admin-gated actions.
func IsAdmin(user *models.User) bool {
	return RoleOf(user).Can(CapManageUsers)
}
