package service

import (
	"context"
	"testing"

	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/domain/model"
	apperrors "github.com/hireline/hireline-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RoleByExternalID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.add("ext-admin", "admin@example.com", domainauth.RoleAdmin, true)
	repo.add("ext-inactive", "gone@example.com", domainauth.RoleEmployer, false)
	svc := NewUserService(UserServiceOptions{Users: repo})

	role, err := svc.RoleByExternalID(ctx, "ext-admin")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, role)

	_, err = svc.RoleByExternalID(ctx, "ext-inactive")
	assert.True(t, apperrors.IsForbidden(err))

	_, err = svc.RoleByExternalID(ctx, "ext-unknown")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserService_SetRole_SecondAdminConflicts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	repo.add("ext-admin", "admin@example.com", domainauth.RoleAdmin, true)
	seeker := repo.add("ext-seeker", "seeker@example.com", domainauth.RoleJobSeeker, true)
	svc := NewUserService(UserServiceOptions{Users: repo})

	_, err := svc.SetRole(ctx, seeker.ID, domainauth.RoleAdmin)
	assert.True(t, apperrors.IsConflict(err))

	promoted, err := svc.SetRole(ctx, seeker.ID, domainauth.RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleEmployer, promoted.Role)
}

func TestUserService_VerifyEmployer(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	employer := repo.add("ext-emp", "emp@example.com", domainauth.RoleEmployer, true)
	seeker := repo.add("ext-seeker", "seeker@example.com", domainauth.RoleJobSeeker, true)
	svc := NewUserService(UserServiceOptions{Users: repo})

	verified, err := svc.VerifyEmployer(ctx, employer.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = svc.VerifyEmployer(ctx, seeker.ID)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUserService_GetProfile_DefaultsWhenUnset(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.add("ext-seeker", "seeker@example.com", domainauth.RoleJobSeeker, true)
	svc := NewUserService(UserServiceOptions{Users: repo})

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Empty(t, profile.Headline)
	assert.NotNil(t, profile.Skills)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.add("ext-seeker", "seeker@example.com", domainauth.RoleJobSeeker, true)
	svc := NewUserService(UserServiceOptions{Users: repo})
	actor := Actor{UserID: user.ID, Role: domainauth.RoleJobSeeker}

	headline := "Backend engineer"
	saved, err := svc.UpdateProfile(ctx, actor, model.UpdateProfileRequest{
		Headline: &headline,
		Skills:   []string{"go", "postgres"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", saved.Headline)

	got, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, got.Skills)
	assert.Len(t, got.Skills, 2)
}
