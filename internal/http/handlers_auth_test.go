package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
	"github.com/hireline/hireline-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements AuthServiceInterface with function fields.
type fakeAuthService struct {
	SignInFunc     func(ctx context.Context, rawToken string) (*service.SignInResult, error)
	SignUpFunc     func(ctx context.Context, rawToken string, role domainauth.Role) (*service.SignInResult, error)
	GetSessionFunc func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	LogoutFunc     func(ctx context.Context, sessionID string) error
}

func (f *fakeAuthService) SignIn(ctx context.Context, rawToken string) (*service.SignInResult, error) {
	return f.SignInFunc(ctx, rawToken)
}

func (f *fakeAuthService) SignUp(ctx context.Context, rawToken string, role domainauth.Role) (*service.SignInResult, error) {
	return f.SignUpFunc(ctx, rawToken, role)
}

func (f *fakeAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	return f.GetSessionFunc(ctx, sessionID)
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	return f.LogoutFunc(ctx, sessionID)
}

func signInResult(role domainauth.Role) *service.SignInResult {
	return &service.SignInResult{
		Session: domainauth.Session{
			ID:        "artifact-1",
			SubjectID: "subject-1",
			UserID:    "user-1",
			FirstName: "Ada",
			Email:     "ada@example.com",
			Role:      role,
			ExpiresAt: time.Now().Add(time.Hour),
		},
		User: &model.User{ID: "user-1", Role: role, Active: true, Verified: true},
	}
}

func TestAuthHandlers_SignIn_SetsCookie(t *testing.T) {
	svc := &fakeAuthService{
		SignInFunc: func(_ context.Context, rawToken string) (*service.SignInResult, error) {
			assert.Equal(t, "id-token", rawToken)
			return signInResult(domainauth.RoleJobSeeker), nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(`{"token":"id-token"}`))
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "hireline_session", cookie.Name)
	assert.Equal(t, "artifact-1", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Positive(t, cookie.MaxAge)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "job_seeker", user["role"])
	// The opaque artifact never appears in the response body.
	assert.NotContains(t, rec.Body.String(), "artifact-1")
}

func TestAuthHandlers_SignIn_BearerHeader(t *testing.T) {
	svc := &fakeAuthService{
		SignInFunc: func(_ context.Context, rawToken string) (*service.SignInResult, error) {
			assert.Equal(t, "header-token", rawToken)
			return signInResult(domainauth.RoleEmployer), nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandlers_SignIn_MissingCredential(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", nil)
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_credential")
}

func TestAuthHandlers_SignIn_InvalidCredential(t *testing.T) {
	svc := &fakeAuthService{
		SignInFunc: func(_ context.Context, _ string) (*service.SignInResult, error) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(`{"token":"bad"}`))
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandlers_SignUp_PassesRole(t *testing.T) {
	var gotRole domainauth.Role
	svc := &fakeAuthService{
		SignUpFunc: func(_ context.Context, _ string, role domainauth.Role) (*service.SignInResult, error) {
			gotRole = role
			return signInResult(role), nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(`{"token":"id-token","role":"employer"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainauth.RoleEmployer, gotRole)
}

func TestAuthHandlers_SignUp_InvalidRole(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(`{"token":"id-token","role":"superuser"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_role")
}

func TestAuthHandlers_SignUp_SecondAdminConflict(t *testing.T) {
	svc := &fakeAuthService{
		SignUpFunc: func(_ context.Context, _ string, _ domainauth.Role) (*service.SignInResult, error) {
			return nil, apperrors.Conflict("An administrator account already exists.")
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/sign-up", strings.NewReader(`{"token":"id-token","role":"admin"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandlers_Logout(t *testing.T) {
	var loggedOut string
	svc := &fakeAuthService{
		LogoutFunc: func(_ context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	h := &AuthHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "artifact-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "artifact-1", loggedOut)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandlers_Logout_NoCookie(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed_out")
}

func TestAuthHandlers_Status(t *testing.T) {
	sess := &domainauth.Session{
		ID:        "artifact-1",
		UserID:    "user-1",
		Email:     "ada@example.com",
		Role:      domainauth.RoleEmployer,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := &fakeAuthService{
		GetSessionFunc: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			if sessionID == "artifact-1" {
				return sess, nil
			}
			return nil, service.ErrSessionExpired
		},
	}
	h := &AuthHandlers{Svc: svc}

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "artifact-1"})
		rec := httptest.NewRecorder()
		h.Status(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":true`)
		assert.Contains(t, rec.Body.String(), "user-1")
	})

	t.Run("expired session clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: "hireline_session", Value: "stale"})
		rec := httptest.NewRecorder()
		h.Status(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
	})
}
