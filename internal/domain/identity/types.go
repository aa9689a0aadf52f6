// Package identity contains domain-level types for the auth-callback contract.
// It is pure and free of framework/adapter concerns.
package identity

// Outcome values understood by Tobira's auth integration.
const (
	OutcomeUser   = "user"
	OutcomeNoUser = "no-user"
)

// Identity represents the principal derived from proxy headers or a verified login.
// It is constructed per request and never persisted.
type Identity struct {
	Username         string
	DisplayName      string
	Email            string
	HomeOrganization string
}

// Outcome is the JSON document returned to Tobira on both callback endpoints.
// A "no-user" outcome carries only the Outcome field.
type Outcome struct {
	Outcome     string   `json:"outcome"`
	Username    string   `json:"username,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Email       string   `json:"email,omitempty"`
	UserRole    string   `json:"userRole,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// NoUser returns the outcome document for an unauthenticated request.
func NoUser() Outcome {
	return Outcome{Outcome: OutcomeNoUser}
}

// IsUser returns true if the outcome describes an authenticated user.
func (o Outcome) IsUser() bool { return o.Outcome == OutcomeUser }
