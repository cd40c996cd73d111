package httpx

import (
	"fmt"
	"html"
	"net/http"
)

// Browser-facing pages. The SPA owns the real UI; these handlers exist so
// the protected and admin subtrees have server-rendered landing pages and
// the boundary redirects resolve to something meaningful.

// Dashboard handles GET /dashboard.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	name := "there"
	if session != nil && session.FirstName != "" {
		name = session.FirstName
	}
	writePage(w, "Dashboard", fmt.Sprintf("<p>Welcome back, %s.</p>", html.EscapeString(name)))
}

// AdminDashboard handles GET /dashboard/admin.
func AdminDashboard(w http.ResponseWriter, _ *http.Request) {
	writePage(w, "Admin", "<p>Platform administration.</p>")
}

// SignInPage handles GET /auth/sign-in, the browser redirect target for
// unauthenticated requests to protected paths.
func SignInPage(w http.ResponseWriter, r *http.Request) {
	redirect := html.EscapeString(safeRedirectPath(r.URL.Query().Get("redirect_uri")))
	writePage(w, "Sign in",
		fmt.Sprintf(`<p>Sign in to continue to <code>%s</code>.</p>`, redirect))
}

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1>%s</body></html>`,
		html.EscapeString(title), html.EscapeString(title), body)
}
