package httpx

import (
	"net/http"

	"github.com/hireline/hireline-api/internal/domain/model"
	"github.com/hireline/hireline-api/internal/service"
)

// GigHandlers provides HTTP handlers for gig browsing and submission.
// Moderation endpoints live in AdminHandlers.
type GigHandlers struct {
	Svc *service.GigService
}

// List handles GET /api/gigs. Only approved gigs are visible here.
func (h *GigHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	opts := model.GigsListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optQuery(r, "q"),
	}

	gigs, err := h.Svc.ListPublic(r.Context(), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"gigs": gigs})
}

// ListMine handles GET /api/gigs/mine, showing the acting employer's gigs
// in every moderation state.
func (h *GigHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(r)
	opts := model.GigsListOptions{Limit: limit, Offset: offset}
	if v := optQuery(r, "status"); v != nil {
		st := model.GigStatus(*v)
		if st.Valid() {
			opts.Status = &st
		}
	}

	gigs, err := h.Svc.ListMine(r.Context(), actor, opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"gigs": gigs})
}

// Get handles GET /api/gigs/{id}.
func (h *GigHandlers) Get(w http.ResponseWriter, r *http.Request) {
	// Anonymous viewers get an empty actor; only approved gigs resolve.
	actor, _ := ActorFromContext(r.Context())

	gig, err := h.Svc.GetByID(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, gig)
}

// Create handles POST /api/gigs.
func (h *GigHandlers) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req model.CreateGigRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	gig, err := h.Svc.Create(r.Context(), actor, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, gig)
}
