package httpx

import (
	"errors"
	"net/http"

	"github.com/hireline/hireline-api/internal/core"
	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	"github.com/hireline/hireline-api/internal/service"
)

// AdminHandlers provides HTTP handlers for the admin-only surface:
// platform stats, user management, gig moderation, ticket resolution,
// and the payments ledger.
type AdminHandlers struct {
	Admin    *service.AdminService
	Users    *service.UserService
	Gigs     *service.GigService
	Tickets  *service.TicketService
	Payments core.PaymentRepository
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.PlatformStats(r.Context())
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	opts := model.UsersListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optQuery(r, "q"),
		Active: optBoolQuery(r, "active"),
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if v := optQuery(r, "role"); v != nil {
		if role, ok := domainauth.ParseRole(*v); ok {
			opts.Role = &role
		}
	}

	users, err := h.Users.List(r.Context(), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// SetUserRole handles PATCH /api/admin/users/{id}/role.
func (h *AdminHandlers) SetUserRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	role, ok := domainauth.ParseRole(req.Role)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_role",
			Err:     errors.New("role must be one of job_seeker, employer, admin"),
		})
		return
	}

	user, err := h.Users.SetRole(r.Context(), r.PathValue("id"), role)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// SetUserActive handles PATCH /api/admin/users/{id}/active.
func (h *AdminHandlers) SetUserActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active *bool `json:"active"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Active == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_field",
			Err:     errors.New("active is required"),
		})
		return
	}

	user, err := h.Users.SetActive(r.Context(), r.PathValue("id"), *req.Active)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// VerifyEmployer handles POST /api/admin/users/{id}/verify.
func (h *AdminHandlers) VerifyEmployer(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.VerifyEmployer(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// ListGigs handles GET /api/admin/gigs, defaulting to the pending queue.
func (h *AdminHandlers) ListGigs(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	opts := model.GigsListOptions{Limit: limit, Offset: offset}

	pending := model.GigPending
	opts.Status = &pending
	if v := optQuery(r, "status"); v != nil {
		st := model.GigStatus(*v)
		if st.Valid() {
			opts.Status = &st
		}
	}

	gigs, err := h.Gigs.ListForModeration(r.Context(), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"gigs": gigs})
}

// ApproveGig handles POST /api/admin/gigs/{id}/approve. The listing fee
// lands in the payments ledger atomically with the approval.
func (h *AdminHandlers) ApproveGig(w http.ResponseWriter, r *http.Request) {
	gig, payment, err := h.Gigs.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"gig": gig, "payment": payment})
}

// RejectGig handles POST /api/admin/gigs/{id}/reject.
func (h *AdminHandlers) RejectGig(w http.ResponseWriter, r *http.Request) {
	gig, err := h.Gigs.Reject(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, gig)
}

// ListTickets handles GET /api/admin/tickets.
func (h *AdminHandlers) ListTickets(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	opts := model.TicketsListOptions{Limit: limit, Offset: offset}
	if v := optQuery(r, "status"); v != nil {
		st := model.TicketStatus(*v)
		if st.Valid() {
			opts.Status = &st
		}
	}

	tickets, err := h.Tickets.ListAll(r.Context(), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}

// CloseTicket handles POST /api/admin/tickets/{id}/close.
func (h *AdminHandlers) CloseTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.Tickets.Close(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, ticket)
}

// ListPayments handles GET /api/admin/payments.
func (h *AdminHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	opts := model.PaymentsListOptions{
		Limit:      limit,
		Offset:     offset,
		EmployerID: optQuery(r, "employer_id"),
	}

	payments, err := h.Payments.List(r.Context(), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"payments": payments})
}
