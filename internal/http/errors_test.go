package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/hireline/hireline-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFound("Job not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperrors.Conflict("already exists"), http.StatusConflict, "conflict"},
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "validation_failed"},
		{"unauthorized", apperrors.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "authentication_required"},
		{"forbidden", apperrors.Forbidden("no"), http.StatusForbidden, "insufficient_permissions"},
		{"internal", apperrors.Internal("boom"), http.StatusInternalServerError, "internal_error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"wrapped app error", fmt.Errorf("outer: %w", apperrors.NotFound("gone")), http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RenderError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestRenderError_HidesCause(t *testing.T) {
	err := apperrors.Wrap(errors.New("pq: secret internal detail"), apperrors.ErrCodeUnauthorized, "Invalid credentials")

	rec := httptest.NewRecorder()
	RenderError(rec, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
	assert.NotContains(t, rec.Body.String(), "secret internal detail")
}

func TestRenderError_IncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(rec, apperrors.ValidationField("email", "invalid email"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "email", body["field"])
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","bogus":true}`))
	rec := httptest.NewRecorder()
	ok := DecodeJSON(rec, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestDecodeJSON_RejectsOversizedBody(t *testing.T) {
	var dst struct {
		Note string `json:"note"`
	}

	huge := `{"note":"` + strings.Repeat("x", maxRequestBody+1) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(huge))
	rec := httptest.NewRecorder()
	ok := DecodeJSON(rec, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
