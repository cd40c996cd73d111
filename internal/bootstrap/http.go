package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireline/hireline-api/config"
	httpx "github.com/hireline/hireline-api/internal/http"
	"golang.org/x/sync/errgroup"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router with the session boundary from the
// service container.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
		appCfg.Sanitize()
	}

	return httpx.NewRouter(httpx.RouterServices{
		Auth:            cfg.Services.Auth,
		Jobs:            cfg.Services.Jobs,
		Applications:    cfg.Services.Applications,
		Gigs:            cfg.Services.Gigs,
		Tickets:         cfg.Services.Tickets,
		Users:           cfg.Services.Users,
		Admin:           cfg.Services.Admin,
		Payments:        cfg.Services.Payments,
		CookieName:      appCfg.Session.CookieName,
		CookieDomain:    appCfg.HTTP.CookieDomain,
		ProtectedPrefix: appCfg.HTTP.ProtectedPrefix,
		AdminPrefix:     appCfg.HTTP.AdminPrefix,
		SignInPath:      appCfg.HTTP.SignInPath,
		Logger:          logger,
	})
}

// RunHTTPServer starts the HTTP server and blocks until a shutdown signal
// arrives or the listener fails, then drains in-flight requests.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      BuildHTTPHandler(cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(signalCtx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	logger.Info("HTTP server stopped")
	return err
}
