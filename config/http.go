package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// ProtectedPrefix is the route prefix requiring an authenticated session.
	ProtectedPrefix string `env:"APP_PROTECTED_PREFIX" envDefault:"/dashboard"`

	// AdminPrefix is the nested route prefix additionally requiring the admin role.
	AdminPrefix string `env:"APP_ADMIN_PREFIX" envDefault:"/dashboard/admin"`

	// SignInPath is where anonymous requests to protected paths are redirected.
	SignInPath string `env:"APP_SIGN_IN_PATH" envDefault:"/auth/sign-in"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.ProtectedPrefix = normalizePrefix(h.ProtectedPrefix, "/dashboard")
	h.AdminPrefix = normalizePrefix(h.AdminPrefix, "/dashboard/admin")
	h.SignInPath = normalizePrefix(h.SignInPath, "/auth/sign-in")

	// The admin prefix must nest under the protected prefix; fall back to
	// the defaults when an operator configures them inconsistently.
	if !strings.HasPrefix(h.AdminPrefix, h.ProtectedPrefix) {
		h.AdminPrefix = h.ProtectedPrefix + "/admin"
	}
}

// normalizePrefix trims whitespace and trailing slashes, enforcing a leading slash.
func normalizePrefix(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") {
		return fallback
	}
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	return p
}
