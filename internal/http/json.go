package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// maxRequestBody caps JSON request bodies. Profile updates and cover
// notes are the largest payloads the API accepts and fit well under 1 MiB.
const maxRequestBody = 1 << 20

// DecodeJSON decodes the request body into dst, rejecting unknown fields
// and oversized payloads. It reports false after writing the error
// response, so callers can bail with a bare return.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}
	return true
}

// WriteJSON encodes v into a buffer before touching the ResponseWriter so
// an encoding failure still yields a clean 500 instead of a truncated body.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// A failed write means the client went away; there is nothing left to do.
	_, _ = buf.WriteTo(w)
}

// ErrorParams describes a JSON error response: the HTTP status, a stable
// machine-readable code, and the human-readable cause.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes the error response shape shared by every handler:
// {"error": <code>, "message": <cause>}.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}
