package service

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// In-memory repository fakes for service tests. They reproduce the
// database semantics the services depend on: not-found errors, the
// (job, user) uniqueness on applications, and the atomic approve+fee on
// gigs.

type fakeJobRepo struct {
	jobs map[string]*model.Job
	seq  int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*model.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, employerID string, req *model.CreateJobRequest) (*model.Job, error) {
	r.seq++
	job := &model.Job{
		ID:          fmt.Sprintf("job-%d", r.seq),
		EmployerID:  employerID,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Status:      model.JobStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.NotFound("Job not found")
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) ListWithOptions(_ context.Context, opts model.JobsListOptions) ([]*model.Job, error) {
	out := make([]*model.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		if opts.Status != nil && job.Status != *opts.Status {
			continue
		}
		if opts.EmployerID != nil && job.EmployerID != *opts.EmployerID {
			continue
		}
		copied := *job
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeJobRepo) Update(_ context.Context, id string, req model.UpdateJobRequest) (*model.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, apperrors.NotFound("Job not found")
	}
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	job.UpdatedAt = time.Now()
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.jobs[id]
	delete(r.jobs, id)
	return ok, nil
}

type fakeApplicationRepo struct {
	apps map[string]*model.Application
	seq  int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*model.Application)}
}

func (r *fakeApplicationRepo) Create(
	_ context.Context,
	userID string,
	req *model.CreateApplicationRequest,
) (*model.Application, error) {
	for _, app := range r.apps {
		if app.JobID == req.JobID && app.UserID == userID {
			return nil, apperrors.Conflict("This value already exists. Please choose a different one.")
		}
	}
	r.seq++
	app := &model.Application{
		ID:        fmt.Sprintf("app-%d", r.seq),
		JobID:     req.JobID,
		UserID:    userID,
		CoverNote: req.CoverNote,
		Status:    model.ApplicationSubmitted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, apperrors.NotFound("Application not found")
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) SetStatus(
	_ context.Context,
	id string,
	status model.ApplicationStatus,
) (*model.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, apperrors.NotFound("Application not found")
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListWithOptions(
	_ context.Context,
	opts model.ApplicationsListOptions,
) ([]*model.Application, error) {
	out := make([]*model.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if opts.JobID != nil && app.JobID != *opts.JobID {
			continue
		}
		if opts.UserID != nil && app.UserID != *opts.UserID {
			continue
		}
		if opts.Status != nil && app.Status != *opts.Status {
			continue
		}
		copied := *app
		out = append(out, &copied)
	}
	return out, nil
}

type fakeGigRepo struct {
	gigs     map[string]*model.Gig
	payments []*model.Payment
	seq      int
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: make(map[string]*model.Gig)}
}

func (r *fakeGigRepo) Create(_ context.Context, employerID string, req *model.CreateGigRequest) (*model.Gig, error) {
	r.seq++
	gig := &model.Gig{
		ID:          fmt.Sprintf("gig-%d", r.seq),
		EmployerID:  employerID,
		Title:       req.Title,
		Description: req.Description,
		BudgetCents: req.BudgetCents,
		Currency:    req.Currency,
		Status:      model.GigPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.gigs[gig.ID] = gig
	return gig, nil
}

func (r *fakeGigRepo) GetByID(_ context.Context, id string) (*model.Gig, error) {
	gig, ok := r.gigs[id]
	if !ok {
		return nil, apperrors.NotFound("Gig not found")
	}
	copied := *gig
	return &copied, nil
}

func (r *fakeGigRepo) Approve(_ context.Context, id string, feeCents int) (*model.Gig, *model.Payment, error) {
	gig, ok := r.gigs[id]
	if !ok || gig.Status != model.GigPending {
		return nil, nil, apperrors.NotFound("Gig not found or not pending")
	}
	gig.Status = model.GigApproved
	gig.UpdatedAt = time.Now()

	payment := &model.Payment{
		ID:          fmt.Sprintf("pay-%d", len(r.payments)+1),
		EmployerID:  gig.EmployerID,
		AmountCents: feeCents,
		Currency:    "USD",
		Purpose:     model.PaymentPurposeGigListing,
		ReferenceID: gig.ID,
		CreatedAt:   time.Now(),
	}
	r.payments = append(r.payments, payment)

	copied := *gig
	return &copied, payment, nil
}

func (r *fakeGigRepo) Reject(_ context.Context, id string) (*model.Gig, error) {
	gig, ok := r.gigs[id]
	if !ok || gig.Status != model.GigPending {
		return nil, apperrors.NotFound("Gig not found or not pending")
	}
	gig.Status = model.GigRejected
	gig.UpdatedAt = time.Now()
	copied := *gig
	return &copied, nil
}

func (r *fakeGigRepo) ListWithOptions(_ context.Context, opts model.GigsListOptions) ([]*model.Gig, error) {
	out := make([]*model.Gig, 0, len(r.gigs))
	for _, gig := range r.gigs {
		if opts.Status != nil && gig.Status != *opts.Status {
			continue
		}
		if opts.EmployerID != nil && gig.EmployerID != *opts.EmployerID {
			continue
		}
		copied := *gig
		out = append(out, &copied)
	}
	return out, nil
}

type fakeUserRepo struct {
	users    map[string]*model.User
	profiles map[string]*model.Profile
	seq      int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*model.User),
		profiles: make(map[string]*model.Profile),
	}
}

func (r *fakeUserRepo) add(externalID, email string, role domainauth.Role, active bool) *model.User {
	r.seq++
	user := &model.User{
		ID:         fmt.Sprintf("user-%d", r.seq),
		ExternalID: externalID,
		Email:      email,
		Role:       role,
		Active:     active,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) FindByExternalID(_ context.Context, externalID string) (*model.User, error) {
	for _, user := range r.users {
		if user.ExternalID == externalID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("User not found")
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, params model.UpsertUserParams) (*model.User, error) {
	for _, user := range r.users {
		if user.ExternalID == params.ExternalID {
			user.Email = params.Email
			user.FirstName = params.FirstName
			user.LastName = params.LastName
			copied := *user
			return &copied, nil
		}
	}
	if params.Role == domainauth.RoleAdmin {
		for _, user := range r.users {
			if user.Role == domainauth.RoleAdmin {
				return nil, apperrors.Conflict("An administrator account already exists.")
			}
		}
	}
	created := r.add(params.ExternalID, params.Email, params.Role, true)
	created.FirstName = params.FirstName
	created.LastName = params.LastName
	copied := *created
	return &copied, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role domainauth.Role) (int, error) {
	n := 0
	for _, user := range r.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id string, role domainauth.Role) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	if role == domainauth.RoleAdmin {
		for _, other := range r.users {
			if other.ID != id && other.Role == domainauth.RoleAdmin {
				return nil, apperrors.Conflict("An administrator account already exists.")
			}
		}
	}
	user.Role = role
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	user.Active = active
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, id string, verified bool) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	user.Verified = verified
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ListWithOptions(_ context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	out := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		if opts.Role != nil && user.Role != *opts.Role {
			continue
		}
		if opts.Active != nil && user.Active != *opts.Active {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.NotFound("Profile not found")
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeUserRepo) UpsertProfile(_ context.Context, userID string, req model.UpdateProfileRequest) (*model.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		profile = &model.Profile{UserID: userID, Skills: []string{}}
		r.profiles[userID] = profile
	}
	if req.Headline != nil {
		profile.Headline = *req.Headline
	}
	if req.Summary != nil {
		profile.Summary = *req.Summary
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.CVURL != nil {
		profile.CVURL = req.CVURL
	}
	profile.UpdatedAt = time.Now()
	copied := *profile
	return &copied, nil
}
