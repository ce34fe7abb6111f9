package authz

import "edustream/models"

// CanDelete decides whether the caller may delete a resource recorded as
// owned by ownerID. Admins may delete anything; teachers only what they own.
// The caller's user row and the resource row must both come from the
// privileged database handle; this check substitutes for the row-level
// restrictions that handle bypasses.
//
// Fetch failures are not this function's concern: a missing resource is
// NOT_FOUND at the call site, a false return here is FORBIDDEN.
func CanDelete(callerID, ownerID uint, roles []string) bool {
	for _, role := range roles {
		switch role {
		case models.RoleAdmin:
			return true
		case models.RoleTeacher:
			if callerID == ownerID {
				return true
			}
		}
	}
	return false
}
