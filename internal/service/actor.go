package service

import domainauth "github.com/hireline/hireline-api/internal/domain/auth"

// Actor identifies the caller of a service operation: the internal user id
// plus the role resolved from their session. Handlers build it from the
// request context.
type Actor struct {
	UserID string
	Role   domainauth.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == domainauth.RoleAdmin }
