package httpx

import (
	"log/slog"
	"net/http"

	"github.com/hireline/hireline-api/internal/core"
	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"github.com/hireline/hireline-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
// Directory-backed services are nil when no database is configured; their
// routes are simply not registered and the boundary still runs degraded.
type RouterServices struct {
	Auth         *service.AuthService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Gigs         *service.GigService
	Tickets      *service.TicketService
	Users        *service.UserService
	Admin        *service.AdminService
	Payments     core.PaymentRepository

	CookieName      string
	CookieDomain    string
	ProtectedPrefix string
	AdminPrefix     string
	SignInPath      string
	Logger          *slog.Logger
}

// NewRouter creates and configures the HTTP router wrapped in the session
// boundary, logging, and panic recovery middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	registerAuthRoutes(mux, services)
	registerJobRoutes(mux, services)
	registerApplicationRoutes(mux, services)
	registerGigRoutes(mux, services)
	registerTicketRoutes(mux, services)
	registerProfileRoutes(mux, services)
	registerAdminRoutes(mux, services)
	registerPageRoutes(mux, services)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var sessions SessionResolver
	if services.Auth != nil {
		sessions = services.Auth
	}
	boundary := SessionBoundary(BoundaryConfig{
		Sessions:        sessions,
		CookieName:      services.CookieName,
		CookieDomain:    services.CookieDomain,
		ProtectedPrefix: services.ProtectedPrefix,
		AdminPrefix:     services.AdminPrefix,
		SignInPath:      services.SignInPath,
		Logger:          logger,
	})

	return Recover(logger)(Logging(logger)(boundary(mux)))
}

func registerAuthRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Auth == nil {
		return
	}
	h := &AuthHandlers{
		Svc:          services.Auth,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	mux.HandleFunc("POST /auth/sign-in", h.SignIn)
	mux.HandleFunc("POST /auth/sign-up", h.SignUp)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerJobRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Jobs == nil {
		return
	}
	h := &JobHandlers{Svc: services.Jobs}
	employer := RequireRole(domainauth.RoleEmployer)

	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("GET /api/jobs/{id}", h.Get)
	mux.Handle("POST /api/jobs", employer(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/jobs/{id}", employer(http.HandlerFunc(h.Update)))
	mux.Handle("POST /api/jobs/{id}/close", employer(http.HandlerFunc(h.Close)))
	mux.Handle("DELETE /api/jobs/{id}", employer(http.HandlerFunc(h.Delete)))
}

func registerApplicationRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Applications == nil {
		return
	}
	h := &ApplicationHandlers{Svc: services.Applications}
	auth := RequireAuth()
	seeker := RequireRole(domainauth.RoleJobSeeker)
	employer := RequireRole(domainauth.RoleEmployer)

	mux.Handle("POST /api/applications", seeker(http.HandlerFunc(h.Apply)))
	mux.Handle("GET /api/applications/mine", auth(http.HandlerFunc(h.ListMine)))
	mux.Handle("GET /api/applications/{id}", auth(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/applications/{id}/status", employer(http.HandlerFunc(h.SetStatus)))
	mux.Handle("GET /api/jobs/{id}/applications", employer(http.HandlerFunc(h.ListForJob)))
}

func registerGigRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Gigs == nil {
		return
	}
	h := &GigHandlers{Svc: services.Gigs}
	employer := RequireRole(domainauth.RoleEmployer)

	mux.HandleFunc("GET /api/gigs", h.List)
	mux.Handle("GET /api/gigs/mine", employer(http.HandlerFunc(h.ListMine)))
	mux.HandleFunc("GET /api/gigs/{id}", h.Get)
	mux.Handle("POST /api/gigs", employer(http.HandlerFunc(h.Create)))
}

func registerTicketRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Tickets == nil {
		return
	}
	h := &TicketHandlers{Svc: services.Tickets}
	auth := RequireAuth()

	mux.Handle("POST /api/tickets", auth(http.HandlerFunc(h.Open)))
	mux.Handle("GET /api/tickets/mine", auth(http.HandlerFunc(h.ListMine)))
	mux.Handle("GET /api/tickets/{id}", auth(http.HandlerFunc(h.Get)))
}

func registerProfileRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Users == nil {
		return
	}
	h := &ProfileHandlers{Users: services.Users}
	auth := RequireAuth()

	mux.Handle("GET /api/me", auth(http.HandlerFunc(h.Me)))
	mux.Handle("GET /api/me/profile", auth(http.HandlerFunc(h.GetProfile)))
	mux.Handle("PUT /api/me/profile", auth(http.HandlerFunc(h.UpdateProfile)))
}

func registerAdminRoutes(mux *http.ServeMux, services RouterServices) {
	if services.Admin == nil || services.Users == nil {
		return
	}
	h := &AdminHandlers{
		Admin:    services.Admin,
		Users:    services.Users,
		Gigs:     services.Gigs,
		Tickets:  services.Tickets,
		Payments: services.Payments,
	}
	// Admin mutations re-check the role against the directory, so a
	// demoted or deactivated admin loses access before the session expires.
	admin := RequireDirectoryRole(services.Users, domainauth.RoleAdmin)

	mux.Handle("GET /api/admin/stats", admin(http.HandlerFunc(h.Stats)))
	mux.Handle("GET /api/admin/users", admin(http.HandlerFunc(h.ListUsers)))
	mux.Handle("PATCH /api/admin/users/{id}/role", admin(http.HandlerFunc(h.SetUserRole)))
	mux.Handle("PATCH /api/admin/users/{id}/active", admin(http.HandlerFunc(h.SetUserActive)))
	mux.Handle("POST /api/admin/users/{id}/verify", admin(http.HandlerFunc(h.VerifyEmployer)))
	if services.Gigs != nil {
		mux.Handle("GET /api/admin/gigs", admin(http.HandlerFunc(h.ListGigs)))
		mux.Handle("POST /api/admin/gigs/{id}/approve", admin(http.HandlerFunc(h.ApproveGig)))
		mux.Handle("POST /api/admin/gigs/{id}/reject", admin(http.HandlerFunc(h.RejectGig)))
	}
	if services.Tickets != nil {
		mux.Handle("GET /api/admin/tickets", admin(http.HandlerFunc(h.ListTickets)))
		mux.Handle("POST /api/admin/tickets/{id}/close", admin(http.HandlerFunc(h.CloseTicket)))
	}
	if services.Payments != nil {
		mux.Handle("GET /api/admin/payments", admin(http.HandlerFunc(h.ListPayments)))
	}
}

// registerPageRoutes serves the server-rendered landing pages. Access to
// the dashboard subtrees is enforced by the session boundary, not here.
func registerPageRoutes(mux *http.ServeMux, services RouterServices) {
	signIn := services.SignInPath
	if signIn == "" {
		signIn = "/auth/sign-in"
	}
	protected := services.ProtectedPrefix
	if protected == "" {
		protected = "/dashboard"
	}
	admin := services.AdminPrefix
	if admin == "" {
		admin = protected + "/admin"
	}

	mux.HandleFunc("GET "+signIn, SignInPage)
	mux.HandleFunc("GET "+protected, Dashboard)
	mux.HandleFunc("GET "+admin, AdminDashboard)
}
