package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code apperrors.ErrorCode) (int, string) {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict"
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized, "authentication_required"
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden, "insufficient_permissions"
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		return 499, "canceled" // nginx convention for client-closed request
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// RenderError writes err as a JSON error response. AppError codes map to
// their HTTP statuses; anything else is an opaque 500.
func RenderError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("an unexpected error occurred"),
		})
		return
	}

	status, errCode := statusForCode(appErr.Code)
	// Message only; the wrapped cause stays in logs.
	body := map[string]string{"error": errCode, "message": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	WriteJSON(w, status, body)
}
