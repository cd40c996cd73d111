package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

// parseLimitOffset reads limit/offset query params, tolerating absence and
// garbage. Repositories clamp to their own defaults.
func parseLimitOffset(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// optQuery returns a pointer to the trimmed query param, or nil when absent.
func optQuery(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// optBoolQuery parses a boolean query param, or nil when absent or invalid.
func optBoolQuery(r *http.Request, name string) *bool {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
