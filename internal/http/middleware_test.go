package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver resolves fixed artifact values to sessions.
type stubResolver struct {
	sessions map[string]*domainauth.Session
}

func (s *stubResolver) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func testBoundaryConfig(resolver SessionResolver) BoundaryConfig {
	return BoundaryConfig{
		Sessions:        resolver,
		CookieName:      "hireline_session",
		ProtectedPrefix: "/dashboard",
		AdminPrefix:     "/dashboard/admin",
		SignInPath:      "/auth/sign-in",
	}
}

func newResolver(sessions ...*domainauth.Session) *stubResolver {
	r := &stubResolver{sessions: make(map[string]*domainauth.Session)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
	return r
}

func sessionWithRole(id string, role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:        id,
		SubjectID: "subject-" + id,
		UserID:    "user-" + id,
		Email:     id + "@example.com",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// echoHandler records the identity headers the boundary forwarded.
func echoHandler(got *http.Header) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	})
}

func doBoundaryRequest(t *testing.T, cfg BoundaryConfig, req *http.Request) (*httptest.ResponseRecorder, http.Header) {
	t.Helper()
	var forwarded http.Header
	handler := SessionBoundary(cfg)(echoHandler(&forwarded))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, forwarded
}

func TestSessionBoundary_DecisionTable(t *testing.T) {
	resolver := newResolver(
		sessionWithRole("seeker-sess", domainauth.RoleJobSeeker),
		sessionWithRole("employer-sess", domainauth.RoleEmployer),
		sessionWithRole("admin-sess", domainauth.RoleAdmin),
	)

	tests := []struct {
		name       string
		path       string
		cookie     string
		wantStatus int
	}{
		{"public path anonymous", "/jobs", "", http.StatusOK},
		{"public path authenticated", "/jobs", "seeker-sess", http.StatusOK},
		{"protected anonymous redirects", "/dashboard", "", http.StatusSeeOther},
		{"protected subtree anonymous redirects", "/dashboard/settings", "", http.StatusSeeOther},
		{"protected seeker allowed", "/dashboard", "seeker-sess", http.StatusOK},
		{"protected employer allowed", "/dashboard", "employer-sess", http.StatusOK},
		{"protected admin allowed", "/dashboard", "admin-sess", http.StatusOK},
		{"admin anonymous redirects", "/dashboard/admin", "", http.StatusSeeOther},
		{"admin seeker redirected to dashboard", "/dashboard/admin", "seeker-sess", http.StatusSeeOther},
		{"admin employer redirected to dashboard", "/dashboard/admin/users", "employer-sess", http.StatusSeeOther},
		{"admin admin allowed", "/dashboard/admin", "admin-sess", http.StatusOK},
		{"prefix sibling not protected", "/dashboardia", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "hireline_session", Value: tt.cookie})
			}
			rec, _ := doBoundaryRequest(t, testBoundaryConfig(resolver), req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSessionBoundary_APIRequestsGetJSONStatuses(t *testing.T) {
	resolver := newResolver(sessionWithRole("seeker-sess", domainauth.RoleJobSeeker))
	cfg := testBoundaryConfig(resolver)
	cfg.ProtectedPrefix = "/api/private"
	cfg.AdminPrefix = "/api/private/admin"

	t.Run("anonymous gets 401 not a redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/private/things", nil)
		rec, _ := doBoundaryRequest(t, cfg, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("wrong role gets 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/private/admin/stats", nil)
		req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "seeker-sess"})
		rec, _ := doBoundaryRequest(t, cfg, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("json accept header counts as API", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Accept", "application/json")
		cfgBrowser := testBoundaryConfig(resolver)
		rec, _ := doBoundaryRequest(t, cfgBrowser, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSessionBoundary_RedirectCarriesDestination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard/settings?tab=profile", nil)
	rec, _ := doBoundaryRequest(t, testBoundaryConfig(newResolver()), req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/sign-in", loc.Path)
	assert.Equal(t, "/dashboard/settings?tab=profile", loc.Query().Get("redirect_uri"))
}

func TestSessionBoundary_NonAdminSentToDashboard(t *testing.T) {
	sess := sessionWithRole("employer-sess", domainauth.RoleEmployer)
	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "employer-sess"})

	rec, _ := doBoundaryRequest(t, testBoundaryConfig(newResolver(sess)), req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestSessionBoundary_StripsSpoofedIdentityHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set(HeaderUserID, "spoofed-id")
	req.Header.Set(HeaderUserEmail, "spoofed@example.com")
	req.Header.Set(HeaderUserRole, "admin")

	_, forwarded := doBoundaryRequest(t, testBoundaryConfig(newResolver()), req)

	assert.Empty(t, forwarded.Get(HeaderUserID))
	assert.Empty(t, forwarded.Get(HeaderUserEmail))
	assert.Empty(t, forwarded.Get(HeaderUserRole))
}

func TestSessionBoundary_ForwardsResolvedIdentity(t *testing.T) {
	sess := sessionWithRole("employer-sess", domainauth.RoleEmployer)
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set(HeaderUserRole, "admin") // spoof attempt loses to the session
	req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "employer-sess"})

	_, forwarded := doBoundaryRequest(t, testBoundaryConfig(newResolver(sess)), req)

	assert.Equal(t, sess.SubjectID, forwarded.Get(HeaderUserID))
	assert.Equal(t, sess.Email, forwarded.Get(HeaderUserEmail))
	assert.Equal(t, "employer", forwarded.Get(HeaderUserRole))
}

func TestSessionBoundary_ForwardsSubjectIDNotDirectoryID(t *testing.T) {
	// With a directory configured the session's UserID is the internal row
	// id; the header must still carry the provider subject.
	sess := &domainauth.Session{
		ID:        "sess-1",
		SubjectID: "uid123",
		UserID:    "5f0c6f9a-0b0e-4f37-9c3e-2f1de0a3b111",
		Email:     "a@b.com",
		Role:      domainauth.RoleJobSeeker,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "sess-1"})

	rec, forwarded := doBoundaryRequest(t, testBoundaryConfig(newResolver(sess)), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid123", forwarded.Get(HeaderUserID))
	assert.NotEqual(t, sess.UserID, forwarded.Get(HeaderUserID))
}

func TestSessionBoundary_ScrubsStaleCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "no-longer-valid"})

	rec, _ := doBoundaryRequest(t, testBoundaryConfig(newResolver()), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "hireline_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSessionBoundary_NilResolverIsAnonymous(t *testing.T) {
	cfg := testBoundaryConfig(nil)

	// A stale cookie is scrubbed and the request proceeds anonymously.
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "anything"})
	rec, forwarded := doBoundaryRequest(t, cfg, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, forwarded.Get(HeaderUserRole))
	require.Len(t, rec.Result().Cookies(), 1)

	// Protected paths stay protected.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec, _ = doBoundaryRequest(t, cfg, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated allowed", func(t *testing.T) {
		sess := sessionWithRole("s1", domainauth.RoleJobSeeker)
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req = req.WithContext(SetSessionInContext(req.Context(), sess))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domainauth.RoleEmployer)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		session    *domainauth.Session
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"matching role", sessionWithRole("s1", domainauth.RoleEmployer), http.StatusOK},
		{"admin passes any requirement", sessionWithRole("s2", domainauth.RoleAdmin), http.StatusOK},
		{"other role forbidden", sessionWithRole("s3", domainauth.RoleJobSeeker), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
			if tt.session != nil {
				req = req.WithContext(SetSessionInContext(req.Context(), tt.session))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// stubRoleChecker returns a fixed role or error for any subject.
type stubRoleChecker struct {
	role domainauth.Role
	err  error
}

func (s *stubRoleChecker) RoleByExternalID(context.Context, string) (domainauth.Role, error) {
	return s.role, s.err
}

func TestRequireDirectoryRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		session    *domainauth.Session
		checker    *stubRoleChecker
		wantStatus int
	}{
		{"anonymous", nil, &stubRoleChecker{role: domainauth.RoleAdmin}, http.StatusUnauthorized},
		{"directory confirms admin", sessionWithRole("s1", domainauth.RoleAdmin), &stubRoleChecker{role: domainauth.RoleAdmin}, http.StatusOK},
		{"demoted since login", sessionWithRole("s2", domainauth.RoleAdmin), &stubRoleChecker{role: domainauth.RoleJobSeeker}, http.StatusForbidden},
		{"directory lookup fails", sessionWithRole("s3", domainauth.RoleAdmin), &stubRoleChecker{err: errors.New("unreachable")}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireDirectoryRole(tt.checker, domainauth.RoleAdmin)(next)
			req := httptest.NewRequest(http.MethodPost, "/api/admin/gigs/1/approve", nil)
			if tt.session != nil {
				req = req.WithContext(SetSessionInContext(req.Context(), tt.session))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHasRequiredRole(t *testing.T) {
	assert.True(t, hasRequiredRole(domainauth.RoleAdmin, domainauth.RoleEmployer))
	assert.True(t, hasRequiredRole(domainauth.RoleAdmin, domainauth.RoleJobSeeker))
	assert.True(t, hasRequiredRole(domainauth.RoleEmployer, domainauth.RoleEmployer))
	assert.False(t, hasRequiredRole(domainauth.RoleEmployer, domainauth.RoleJobSeeker))
	assert.False(t, hasRequiredRole(domainauth.RoleJobSeeker, domainauth.RoleEmployer))
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/dashboard", "/dashboard"},
		{"/dashboard/settings?tab=profile", "/dashboard/settings?tab=profile"},
		{"https://evil.example.com/phish", "/"},
		{"//evil.example.com", "/"},
		{"no-leading-slash", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectPath(tt.in), "input %q", tt.in)
	}
}
