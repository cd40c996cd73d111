package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	SignIn(ctx context.Context, rawToken string) (*service.SignInResult, error)
	SignUp(ctx context.Context, rawToken string, role domainauth.Role) (*service.SignInResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for the session boundary endpoints.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieName   string
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) cookieName() string {
	if h.CookieName != "" {
		return h.CookieName
	}
	return "hireline_session"
}

// signInRequest is the body accepted by SignIn and SignUp. The token may
// alternatively arrive as an Authorization bearer header.
type signInRequest struct {
	Token string `json:"token,omitempty"`
	Role  string `json:"role,omitempty"` // sign-up only
}

// SignIn exchanges a verified identity token for a session cookie.
// POST /auth/sign-in.
func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	token, _, ok := h.readCredential(w, r)
	if !ok {
		return
	}

	result, err := h.Svc.SignIn(r.Context(), token)
	if err != nil {
		RenderError(w, err)
		return
	}
	h.finishSession(w, r, result)
}

// SignUp exchanges a verified identity token for a session cookie,
// creating the account with the requested role.
// POST /auth/sign-up.
func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	token, req, ok := h.readCredential(w, r)
	if !ok {
		return
	}

	role := domainauth.RoleJobSeeker
	if req.Role != "" {
		parsed, valid := domainauth.ParseRole(req.Role)
		if !valid {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_role",
				Err:     errors.New("role must be one of job_seeker, employer, admin"),
			})
			return
		}
		role = parsed
	}

	result, err := h.Svc.SignUp(r.Context(), token, role)
	if err != nil {
		RenderError(w, err)
		return
	}
	h.finishSession(w, r, result)
}

// Logout invalidates the server-side session and clears the cookie.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName()); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearSessionCookie(w, r)

	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName())
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), cookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie.
		h.clearSessionCookie(w, r)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":         session.UserID,
			"first_name": session.FirstName,
			"last_name":  session.LastName,
			"email":      session.Email,
			"role":       session.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}

// readCredential extracts the identity token from the Authorization header
// or the JSON body. On failure the error response is already written.
func (h *AuthHandlers) readCredential(w http.ResponseWriter, r *http.Request) (string, signInRequest, bool) {
	var req signInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return "", req, false
		}
	}

	token := req.Token
	if authz := r.Header.Get("Authorization"); token == "" && authz != "" {
		if after, found := strings.CutPrefix(authz, "Bearer "); found {
			token = after
		}
	}
	if strings.TrimSpace(token) == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "missing_credential",
			Err:     errors.New("an identity token is required"),
		})
		return "", req, false
	}
	return token, req, true
}

// finishSession sets the session cookie and writes the signed-in payload.
func (h *AuthHandlers) finishSession(w http.ResponseWriter, r *http.Request, result *service.SignInResult) {
	h.setSessionCookie(w, r, result.Session)

	user := map[string]any{
		"id":         result.Session.UserID,
		"first_name": result.Session.FirstName,
		"last_name":  result.Session.LastName,
		"email":      result.Session.Email,
		"role":       result.Session.Role,
	}
	if result.User != nil {
		user["verified"] = result.User.Verified
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          user,
		"expires_at":    result.Session.ExpiresAt,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName(),
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie clears the session cookie, mirroring the attributes
// used when setting it to maximize compatibility across browsers.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName(),
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
