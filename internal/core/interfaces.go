// Package core provides the role-derivation and identity-resolution logic of
// the auth service. It defines the interfaces the adapter layer implements.
package core

import (
	"context"
)

// Cache stores serialized lookup results keyed by request-independent strings.
// Implementations must be safe for concurrent use. A miss is reported through
// the boolean, not through an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CourseRoleLookup resolves the course-membership role tokens for a user.
// A user without course memberships yields an empty slice; an unconfigured
// lookup yields (nil, nil). Errors indicate transport failures and are
// isolated by the RoleService.
type CourseRoleLookup interface {
	CourseRoles(ctx context.Context, username string) ([]string, error)
}

// UserData is the payload returned by the login verification web service.
type UserData struct {
	Username  string `json:"username"`
	GivenName string `json:"given_name"`
	Surname   string `json:"sur_name"`
	Email     string `json:"email"`
}

// LoginVerifier checks credentials against the external login web service.
// ok is false when the credentials were rejected, the response lacked the
// required username/email fields, or no endpoint is configured. A non-nil
// error indicates a transport failure.
type LoginVerifier interface {
	Verify(ctx context.Context, username, password string) (user UserData, ok bool, err error)
}
