package httpx

import (
	"errors"
	"net/http"

	"github.com/hireline/hireline-api/internal/domain/model"
	"github.com/hireline/hireline-api/internal/service"
)

// ApplicationHandlers provides HTTP handlers for the apply/review workflow.
type ApplicationHandlers struct {
	Svc *service.ApplicationService
}

// Apply handles POST /api/applications.
func (h *ApplicationHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req model.CreateApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.Apply(r.Context(), actor, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

// ListMine handles GET /api/applications/mine.
func (h *ApplicationHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(r)
	opts := model.ApplicationsListOptions{Limit: limit, Offset: offset}
	if v := optQuery(r, "status"); v != nil {
		st := model.ApplicationStatus(*v)
		if st.Valid() {
			opts.Status = &st
		}
	}

	apps, err := h.Svc.ListMine(r.Context(), actor, opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

// ListForJob handles GET /api/jobs/{id}/applications.
func (h *ApplicationHandlers) ListForJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(r)
	opts := model.ApplicationsListOptions{Limit: limit, Offset: offset}
	if v := optQuery(r, "status"); v != nil {
		st := model.ApplicationStatus(*v)
		if st.Valid() {
			opts.Status = &st
		}
	}

	apps, err := h.Svc.ListForJob(r.Context(), actor, r.PathValue("id"), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

// Get handles GET /api/applications/{id}.
func (h *ApplicationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	app, err := h.Svc.GetByID(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// SetStatus handles PATCH /api/applications/{id}/status.
func (h *ApplicationHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	status := model.ApplicationStatus(req.Status)
	if !status.Valid() {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_status",
			Err:     errors.New("status must be one of submitted, reviewed, accepted, rejected"),
		})
		return
	}

	app, err := h.Svc.SetStatus(r.Context(), actor, r.PathValue("id"), status)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}
