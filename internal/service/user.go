package service

import (
	"context"

	"github.com/hireline/hireline-api/internal/core"
	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users core.UserRepository
}

// UserService covers profile self-service and the admin's user management.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users}
}

// RoleByExternalID looks up the user's current role by the identity
// provider's subject id. Privileged handlers use it to re-check the role
// at mutation time instead of trusting the role frozen into the session.
func (s *UserService) RoleByExternalID(ctx context.Context, externalID string) (domainauth.Role, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return "", err
	}
	if !user.Active {
		return "", apperrors.Forbidden("Account is deactivated")
	}
	return user.Role, nil
}

// GetByID retrieves a user record.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetProfile returns the user's profile, or an empty one when nothing has
// been saved yet.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &model.Profile{UserID: userID, Skills: []string{}}, nil
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile saves the acting user's own profile.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	actor Actor,
	req model.UpdateProfileRequest,
) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.users.UpsertProfile(ctx, actor.UserID, req)
}

// List returns users for the admin directory view.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	return s.users.ListWithOptions(ctx, opts)
}

// SetRole changes a user's role. The single-admin invariant is enforced
// by the directory; promoting a second admin comes back as a conflict.
func (s *UserService) SetRole(ctx context.Context, id string, role domainauth.Role) (*model.User, error) {
	return s.users.SetRole(ctx, id, role)
}

// SetActive enables or disables an account. Existing sessions of a
// deactivated user keep working until they expire; new sign-ins fail.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) (*model.User, error) {
	return s.users.SetActive(ctx, id, active)
}

// VerifyEmployer marks an employer account as vetted. Verifying a
// non-employer is a validation error.
func (s *UserService) VerifyEmployer(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domainauth.RoleEmployer {
		return nil, apperrors.ValidationField("role", "only employer accounts can be verified")
	}
	return s.users.SetVerified(ctx, id, true)
}
