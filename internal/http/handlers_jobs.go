package httpx

import (
	"net/http"

	"github.com/hireline/hireline-api/internal/domain/model"
	"github.com/hireline/hireline-api/internal/service"
)

// JobHandlers provides HTTP handlers for job posting operations.
type JobHandlers struct {
	Svc *service.JobService
}

// List handles GET /api/jobs. Anonymous callers only see open postings;
// authenticated callers may filter by status.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	opts := model.JobsListOptions{
		Limit:    limit,
		Offset:   offset,
		Q:        optQuery(r, "q"),
		Location: optQuery(r, "location"),
		Sort:     r.URL.Query().Get("sort"),
		Dir:      r.URL.Query().Get("dir"),
	}
	if v := optQuery(r, "employment_type"); v != nil {
		et := model.EmploymentType(*v)
		if et.Valid() {
			opts.EmploymentType = &et
		}
	}

	open := model.JobStatusOpen
	opts.Status = &open
	if !IsAnonymous(r.Context()) {
		if v := optQuery(r, "status"); v != nil {
			st := model.JobStatus(*v)
			if st.Valid() {
				opts.Status = &st
			}
		}
		if v := optQuery(r, "employer_id"); v != nil {
			opts.EmployerID = v
		}
	}

	jobs, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// Get handles GET /api/jobs/{id}.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Create handles POST /api/jobs.
func (h *JobHandlers) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Create(r.Context(), actor, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, job)
}

// Update handles PATCH /api/jobs/{id}.
func (h *JobHandlers) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	var req model.UpdateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Svc.Update(r.Context(), actor, r.PathValue("id"), req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Close handles POST /api/jobs/{id}/close.
func (h *JobHandlers) Close(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	job, err := h.Svc.Close(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Delete handles DELETE /api/jobs/{id}.
func (h *JobHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(w, r)
	if !ok {
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		RenderError(w, err)
		return
	}
	if !deleted {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "Job not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
