package httpx

import (
	"net/http"

	"github.com/hireline/hireline-api/internal/domain/model"
	"github.com/hireline/hireline-api/internal/service"
)

// ProfileHandlers provides HTTP handlers for account self-service.
type ProfileHandlers struct {
	Users *service.UserService
}

// Me handles GET /api/me, returning the acting user's directory record.
func (h *ProfileHandlers) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	user, err := h.Users.GetByID(r.Context(), actor.UserID)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// GetProfile handles GET /api/me/profile. A never-saved profile comes
// back empty rather than 404.
func (h *ProfileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), actor.UserID)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/me/profile.
func (h *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Users.UpdateProfile(r.Context(), actor, req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}
