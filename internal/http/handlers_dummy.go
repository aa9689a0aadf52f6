package httpx

import (
	"log/slog"
	"net/http"
)

// DummyBackendHandlers serves stand-ins for the user web services so the
// whole callback flow can be exercised without an institutional backend.
// Enabled by the dummy-backend service mode; never run these in production.
type DummyBackendHandlers struct {
	Logger *slog.Logger
}

// HandleLogin accepts exactly the admin/opencast credential pair and returns
// its userdata document; anything else is a 401.
func (h *DummyBackendHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.warn(r)

	username := r.PathValue("username")
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	password := r.PostForm.Get("password")

	if username == "admin" && password == "opencast" {
		writeJSON(w, http.StatusOK, map[string]string{
			"username":   username,
			"given_name": "Admin",
			"sur_name":   "Opencast",
			"email":      "admin@localhost",
		})
		return
	}
	writeError(w, http.StatusUnauthorized)
}

// HandleCourses returns a fixed course list for any username.
func (h *DummyBackendHandlers) HandleCourses(w http.ResponseWriter, r *http.Request) {
	h.warn(r)
	writeJSON(w, http.StatusOK, []int{1, 2, 3, 4})
}

func (h *DummyBackendHandlers) warn(r *http.Request) {
	h.Logger.WarnContext(r.Context(),
		"dummy user service called, do not use in production",
		slog.String("path", r.URL.Path))
}

func writeError(w http.ResponseWriter, code int) {
	writeJSON(w, code, map[string]string{"error": http.StatusText(code)})
}
