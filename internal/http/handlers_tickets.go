package httpx

import (
	"net/http"

	"github.com/hireline/hireline-api/internal/domain/model"
	"github.com/hireline/hireline-api/internal/service"
)

// TicketHandlers provides HTTP handlers for the support ticket workflow.
type TicketHandlers struct {
	Svc *service.TicketService
}

// Open handles POST /api/tickets.
func (h *TicketHandlers) Open(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req model.CreateTicketRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.Svc.Open(r.Context(), actor, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ticket)
}

// ListMine handles GET /api/tickets/mine.
func (h *TicketHandlers) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	limit, offset := parseLimitOffset(r)
	opts := model.TicketsListOptions{Limit: limit, Offset: offset}
	if v := optQuery(r, "status"); v != nil {
		st := model.TicketStatus(*v)
		if st.Valid() {
			opts.Status = &st
		}
	}

	tickets, err := h.Svc.ListMine(r.Context(), actor, opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}

// Get handles GET /api/tickets/{id}.
func (h *TicketHandlers) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	ticket, err := h.Svc.GetByID(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ticket)
}
