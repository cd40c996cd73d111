package service

import (
	"context"

	"github.com/hireline/hireline-api/internal/core"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Applications core.ApplicationRepository
	Jobs         core.JobRepository
}

// ApplicationService orchestrates the apply/review workflow.
type ApplicationService struct {
	applications core.ApplicationRepository
	jobs         core.JobRepository
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) *ApplicationService {
	return &ApplicationService{applications: opts.Applications, jobs: opts.Jobs}
}

// Apply submits the acting seeker's application to an open posting. The
// unique (job, user) constraint turns repeat applies into a conflict.
func (s *ApplicationService) Apply(
	ctx context.Context,
	actor Actor,
	req *model.CreateApplicationRequest,
) (*model.Application, error) {
	if req == nil {
		return nil, apperrors.Validation("create application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusOpen {
		return nil, apperrors.Conflict("This job posting is closed.")
	}

	return s.applications.Create(ctx, actor.UserID, req)
}

// ListMine returns the acting user's applications.
func (s *ApplicationService) ListMine(
	ctx context.Context,
	actor Actor,
	opts model.ApplicationsListOptions,
) ([]*model.Application, error) {
	opts.UserID = &actor.UserID
	return s.applications.ListWithOptions(ctx, opts)
}

// ListForJob returns the applications on a posting. Only the posting's
// owner or the admin may read them.
func (s *ApplicationService) ListForJob(
	ctx context.Context,
	actor Actor,
	jobID string,
	opts model.ApplicationsListOptions,
) ([]*model.Application, error) {
	if err := s.checkJobOwnership(ctx, actor, jobID); err != nil {
		return nil, err
	}
	opts.JobID = &jobID
	return s.applications.ListWithOptions(ctx, opts)
}

// SetStatus moves an application through review. Only the posting's owner
// or the admin may change it.
func (s *ApplicationService) SetStatus(
	ctx context.Context,
	actor Actor,
	id string,
	status model.ApplicationStatus,
) (*model.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkJobOwnership(ctx, actor, app.JobID); err != nil {
		return nil, err
	}
	return s.applications.SetStatus(ctx, id, status)
}

// GetByID retrieves an application visible to the applicant, the posting's
// owner, or the admin.
func (s *ApplicationService) GetByID(ctx context.Context, actor Actor, id string) (*model.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.UserID == actor.UserID || actor.IsAdmin() {
		return app, nil
	}
	if err := s.checkJobOwnership(ctx, actor, app.JobID); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) checkJobOwnership(ctx context.Context, actor Actor, jobID string) error {
	if actor.IsAdmin() {
		return nil
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.EmployerID != actor.UserID {
		return apperrors.Forbidden("You do not own this job posting.")
	}
	return nil
}
