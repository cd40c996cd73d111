package service

import (
	"context"

	"github.com/hireline/hireline-api/internal/core"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Jobs core.JobRepository
}

// JobService orchestrates job posting CRUD with ownership checks.
type JobService struct {
	jobs core.JobRepository
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) *JobService {
	return &JobService{jobs: opts.Jobs}
}

// Create posts a new job owned by the acting employer.
func (s *JobService) Create(ctx context.Context, actor Actor, req *model.CreateJobRequest) (*model.Job, error) {
	return s.jobs.Create(ctx, actor.UserID, req)
}

// GetByID retrieves a job by ID.
func (s *JobService) GetByID(ctx context.Context, id string) (*model.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// List returns jobs using the given filters.
func (s *JobService) List(ctx context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	return s.jobs.ListWithOptions(ctx, opts)
}

// Update modifies a posting. Only the owning employer or the admin may
// update; everyone else gets Forbidden regardless of what changed.
func (s *JobService) Update(ctx context.Context, actor Actor, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if err := s.checkOwnership(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, id, req)
}

// Close marks a posting closed. Closed postings stop accepting applications.
func (s *JobService) Close(ctx context.Context, actor Actor, id string) (*model.Job, error) {
	status := model.JobStatusClosed
	return s.Update(ctx, actor, id, model.UpdateJobRequest{Status: &status})
}

// Delete removes a posting and its applications.
func (s *JobService) Delete(ctx context.Context, actor Actor, id string) (bool, error) {
	if err := s.checkOwnership(ctx, actor, id); err != nil {
		return false, err
	}
	return s.jobs.Delete(ctx, id)
}

func (s *JobService) checkOwnership(ctx context.Context, actor Actor, id string) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job.EmployerID != actor.UserID && !actor.IsAdmin() {
		return apperrors.Forbidden("You do not own this job posting.")
	}
	return nil
}
