// Package policy centralizes authorization decisions. Every mutating
// operation asks for an explicit Decision before touching storage, so the
// rules live in one place instead of being scattered across handlers.
package policy

import "ripple/internal/models"

// Decision is the outcome of a policy check. Reason is set only when the
// action is denied and is safe to surface to the caller.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a caller-facing reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanEditProfile reports whether actor may modify the given profile.
// Users edit their own profile; staff can edit anyone's.
func CanEditProfile(actor *models.User, profileID uint) Decision {
	if actor == nil {
		return Deny("authentication required")
	}
	if actor.ID == profileID || actor.IsStaff {
		return Allow()
	}
	return Deny("you can only edit your own profile")
}

// CanMutatePost reports whether actor may update or delete the given post.
func CanMutatePost(actor *models.User, post *models.Post) Decision {
	if actor == nil {
		return Deny("authentication required")
	}
	if post == nil {
		return Deny("post does not exist")
	}
	if post.UserID == actor.ID || actor.IsStaff {
		return Allow()
	}
	return Deny("you can only modify your own posts")
}

// CanAdministerUsers reports whether actor may perform staff-only user
// management such as deleting accounts.
func CanAdministerUsers(actor *models.User) Decision {
	if actor == nil {
		return Deny("authentication required")
	}
	if actor.IsStaff {
		return Allow()
	}
	return Deny("staff access required")
}
