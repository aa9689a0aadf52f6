package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/elan-ev/tobira-auth-callback-service/internal/core"
	"github.com/elan-ev/tobira-auth-callback-service/internal/domain/identity"
)

// LoginHandlers serves the login-callback endpoint used when Tobira's own
// login page submits credentials instead of going through the SAML proxy.
type LoginHandlers struct {
	Resolver *core.Resolver
	Logger   *slog.Logger
}

type loginRequest struct {
	Userid   string `json:"userid"`
	Password string `json:"password"`
}

// HandleLoginCallback verifies the submitted credentials against the user
// login web service. A malformed body or missing field is answered with a 400
// no-user outcome; a well-formed request always gets a 200 with the resolved
// outcome, even when the credentials are wrong.
func (h *LoginHandlers) HandleLoginCallback(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, identity.NoUser())
		return
	}
	if req.Userid == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, identity.NoUser())
		return
	}

	outcome := h.Resolver.ResolveCredentials(r.Context(), req.Userid, req.Password)
	if !outcome.IsUser() {
		h.Logger.DebugContext(r.Context(), "login rejected", slog.String("userid", req.Userid))
	}
	writeJSON(w, http.StatusOK, outcome)
}
