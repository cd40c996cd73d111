package config

import "time"

const (
	defaultSessionCookieName = "hireline_session"
	// Five days, matching the longest-lived artifact the identity layer will honor.
	defaultSessionTTL = 120 * time.Hour
	minSessionTTL     = 5 * time.Minute
)

// SessionConfig contains session artifact configuration.
type SessionConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"hireline_session"`

	// TTL is the absolute lifetime of a minted session artifact.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"120h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.CookieName == "" {
		s.CookieName = defaultSessionCookieName
	}
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	if s.TTL < minSessionTTL {
		s.TTL = minSessionTTL
	}
}
