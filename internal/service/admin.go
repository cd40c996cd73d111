package service

import (
	"context"

	"github.com/hireline/hireline-api/internal/core"
	"github.com/hireline/hireline-api/internal/domain/model"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Stats core.StatsRepository
}

// AdminService serves the admin dashboard aggregates.
type AdminService struct {
	stats core.StatsRepository
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	return &AdminService{stats: opts.Stats}
}

// PlatformStats returns the dashboard counters.
func (s *AdminService) PlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	return s.stats.PlatformStats(ctx)
}
