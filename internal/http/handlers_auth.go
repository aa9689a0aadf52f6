package httpx

import (
	"log/slog"
	"net/http"

	"github.com/elan-ev/tobira-auth-callback-service/config"
	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
)

// AuthHandlers serves the auth-callback endpoint. The reverse proxy forwards
// every protected request here with the identity attributes it extracted from
// the SAML session copied into request headers.
type AuthHandlers struct {
	Resolver *core.Resolver
	Headers  config.HeaderConfig
	Logger   *slog.Logger
}

// HandleAuthCallback derives the user outcome from the configured identity
// headers. The response is always 200; an unauthenticated request yields the
// no-user outcome rather than an error status.
func (h *AuthHandlers) HandleAuthCallback(w http.ResponseWriter, r *http.Request) {
	values := core.HeaderValues{
		Username:         r.Header.Get(h.Headers.Username),
		DisplayName:      r.Header.Get(h.Headers.DisplayName),
		Email:            r.Header.Get(h.Headers.Email),
		HomeOrganization: r.Header.Get(h.Headers.HomeOrganization),
		GivenName:        r.Header.Get(h.Headers.GivenName),
		Surname:          r.Header.Get(h.Headers.Surname),
		Affiliations:     r.Header.Values(h.Headers.Affiliation),
	}

	outcome := h.Resolver.ResolveHeaders(r.Context(), values)
	writeJSON(w, http.StatusOK, outcome)
}
