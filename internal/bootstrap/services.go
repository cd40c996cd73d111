package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/hireline/hireline-api/config"
	"github.com/hireline/hireline-api/internal/core"
	"github.com/hireline/hireline-api/internal/data"
	"github.com/hireline/hireline-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services. Database-backed fields
// are nil when no database is configured; the router skips their routes and
// the auth service degrades role resolution.
type ServiceContainer struct {
	Auth         *service.AuthService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Gigs         *service.GigService
	Tickets      *service.TicketService
	Users        *service.UserService
	Admin        *service.AdminService
	Payments     core.PaymentRepository
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users        *data.UserRepo
	Jobs         *data.JobRepo
	Applications *data.ApplicationRepo
	Gigs         *data.GigRepo
	Tickets      *data.TicketRepo
	Payments     *data.PaymentRepo
	Stats        *data.StatsRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:        data.NewUserRepo(db),
		Jobs:         data.NewJobRepo(db),
		Applications: data.NewApplicationRepo(db),
		Gigs:         data.NewGigRepo(db),
		Tickets:      data.NewTicketRepo(db),
		Payments:     data.NewPaymentRepo(db),
		Stats:        data.NewStatsRepo(db),
	}
}

// NewServices wires repositories into services. With a nil DB only the auth
// service is built, running in its degraded mode.
func NewServices(deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
		cfg.Sanitize()
	}

	if deps.DB == nil {
		return ServiceContainer{
			Auth: BuildAuthService(AuthConfig{
				Auth:        cfg.Auth,
				Session:     cfg.Session,
				RedisClient: deps.RedisClient,
				Logger:      deps.Logger,
			}),
		}
	}

	repos := buildRepositories(deps.DB)

	return ServiceContainer{
		Auth: BuildAuthService(AuthConfig{
			Auth:        cfg.Auth,
			Session:     cfg.Session,
			RedisClient: deps.RedisClient,
			Users:       repos.Users,
			Logger:      deps.Logger,
		}),
		Jobs:         service.NewJobService(service.JobServiceOptions{Jobs: repos.Jobs}),
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{Applications: repos.Applications, Jobs: repos.Jobs}),
		Gigs:         service.NewGigService(service.GigServiceOptions{Gigs: repos.Gigs}),
		Tickets:      service.NewTicketService(service.TicketServiceOptions{Tickets: repos.Tickets}),
		Users:        service.NewUserService(service.UserServiceOptions{Users: repos.Users}),
		Admin:        service.NewAdminService(service.AdminServiceOptions{Stats: repos.Stats}),
		Payments:     repos.Payments,
	}
}
