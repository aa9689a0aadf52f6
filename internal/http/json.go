package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// writeJSON writes a JSON response with the given status code and data. The
// body is encoded into a buffer first so a marshalling failure never produces
// a half-written 200 response.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}
