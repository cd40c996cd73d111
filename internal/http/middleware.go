package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver resolves a session artifact to its server-side record.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// Identity headers set for downstream handlers after session resolution.
// Inbound values are always stripped so clients cannot spoof them.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// BoundaryConfig configures the session boundary middleware.
type BoundaryConfig struct {
	Sessions        SessionResolver // nil means every request is anonymous
	CookieName      string
	CookieDomain    string
	ProtectedPrefix string // subtree requiring any authenticated session
	AdminPrefix     string // subtree requiring the admin role
	SignInPath      string // browser redirect target for unauthenticated requests
	Logger          *slog.Logger
}

// SessionBoundary returns the middleware that guards every request:
// it strips spoofable identity headers, resolves the session cookie
// (scrubbing stale cookies), attaches the session to the context, and
// enforces the protected and admin subtrees. API paths get JSON statuses;
// browser paths get redirects.
func SessionBoundary(cfg BoundaryConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Clients never get to assert their own identity.
			r.Header.Del(HeaderUserID)
			r.Header.Del(HeaderUserEmail)
			r.Header.Del(HeaderUserRole)

			session := resolveSession(w, r, cfg)
			if session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
				// The forwarded id is the identity provider's subject, not
				// the directory row id; downstream consumers key off the
				// same identifier the token carried.
				r.Header.Set(HeaderUserID, session.SubjectID)
				r.Header.Set(HeaderUserEmail, session.Email)
				r.Header.Set(HeaderUserRole, string(session.Role))
			}

			if !enforceBoundary(w, r, cfg, session) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveSession reads the session cookie and resolves it. A cookie that
// fails to resolve (expired, revoked, garbage) is scrubbed from the client
// so the browser stops presenting it.
func resolveSession(w http.ResponseWriter, r *http.Request, cfg BoundaryConfig) *domainauth.Session {
	cookie, err := r.Cookie(cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	if cfg.Sessions == nil {
		scrubSessionCookie(w, r, cfg)
		return nil
	}

	session, err := cfg.Sessions.GetSession(r.Context(), cookie.Value)
	if err != nil {
		scrubSessionCookie(w, r, cfg)
		return nil
	}
	return session
}

// enforceBoundary applies the protected/admin subtree rules. It reports
// whether the request may continue; when false the response is written.
func enforceBoundary(w http.ResponseWriter, r *http.Request, cfg BoundaryConfig, session *domainauth.Session) bool {
	path := r.URL.Path
	underAdmin := cfg.AdminPrefix != "" && pathUnder(path, cfg.AdminPrefix)
	underProtected := cfg.ProtectedPrefix != "" && pathUnder(path, cfg.ProtectedPrefix)

	if !underAdmin && !underProtected {
		return true
	}

	if session == nil {
		if isAPIRequest(r) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "authentication_required",
				Err:     errors.New("authentication required"),
			})
		} else {
			redirectToSignIn(w, r, cfg.SignInPath)
		}
		return false
	}

	if underAdmin && !session.IsAdmin() {
		if isAPIRequest(r) {
			WriteError(w, ErrorParams{
				Code:    http.StatusForbidden,
				ErrCode: "insufficient_permissions",
				Err:     errors.New("insufficient permissions"),
			})
		} else {
			// Authenticated but not admin: send the browser back to the
			// non-admin dashboard rather than a bare error page.
			dest := cfg.ProtectedPrefix
			if dest == "" {
				dest = "/"
			}
			http.Redirect(w, r, dest, http.StatusSeeOther)
		}
		return false
	}

	return true
}

// pathUnder reports whether path equals prefix or sits inside its subtree.
func pathUnder(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// isAPIRequest distinguishes JSON API calls from browser navigation.
func isAPIRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept != "" && !strings.Contains(accept, "text/html") && strings.Contains(accept, "application/json")
}

// redirectToSignIn sends browsers to the sign-in page carrying the
// original destination, validated to stay same-origin.
func redirectToSignIn(w http.ResponseWriter, r *http.Request, signInPath string) {
	if signInPath == "" {
		signInPath = "/auth/sign-in"
	}
	redirectPath := safeRedirectPath(r.URL.RequestURI())
	http.Redirect(w, r, signInPath+"?redirect_uri="+url.QueryEscape(redirectPath), http.StatusSeeOther)
}

// scrubSessionCookie expires the session cookie on the client, mirroring
// the attributes used when it was set.
func scrubSessionCookie(w http.ResponseWriter, r *http.Request, cfg BoundaryConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// isSecureRequest detects TLS directly or via a trusted proxy header.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// RequireAuth returns a middleware that requires an authenticated session.
// If the request is anonymous, it returns a 401 Unauthorized response.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAnonymous(r.Context()) {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole returns a middleware that requires a specific role on top of
// authentication. Admin satisfies every role requirement; employer and
// job_seeker are distinct, not ranked.
func RequireRole(requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetUserSessionFromContext(r.Context())
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			if !hasRequiredRole(session.Role, requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleChecker re-fetches the caller's current role from the user directory.
type RoleChecker interface {
	RoleByExternalID(ctx context.Context, externalID string) (domainauth.Role, error)
}

// RequireDirectoryRole guards privileged mutations: beyond the session's
// recorded role, the caller's current role is re-fetched from the
// directory so a demotion takes effect before the session expires. A
// failed lookup denies the request.
func RequireDirectoryRole(checker RoleChecker, requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetUserSessionFromContext(r.Context())
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			role, err := checker.RoleByExternalID(r.Context(), session.SubjectID)
			if err != nil || !hasRequiredRole(role, requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// hasRequiredRole checks if the user's role meets the required role.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	if userRole == domainauth.RoleAdmin {
		return true
	}
	return userRole == requiredRole
}

// safeRedirectPath ensures the provided redirect is a same-origin relative
// path starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return u.RequestURI()
}
