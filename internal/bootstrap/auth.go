package bootstrap

import (
	"log/slog"

	"github.com/hireline/hireline-api/config"
	"github.com/hireline/hireline-api/internal/adapters/devauth"
	"github.com/hireline/hireline-api/internal/adapters/oidc"
	redisadapter "github.com/hireline/hireline-api/internal/adapters/redis"
	"github.com/hireline/hireline-api/internal/ports"
	"github.com/hireline/hireline-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	Users       ports.UserDirectory
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth
// mode. Returns nil when auth cannot be built; the session boundary then
// treats every request as anonymous.
func BuildAuthService(cfg AuthConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	verifier := buildVerifier(cfg)
	if verifier == nil {
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Verifier:   verifier,
		Sessions:   redisadapter.NewSessionStore(cfg.RedisClient),
		Users:      cfg.Users,
		SessionTTL: cfg.Session.TTL,
	})
}

//nolint:ireturn // the verifier is selected by auth mode at runtime.
func buildVerifier(cfg AuthConfig) ports.TokenVerifier {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		v, err := devauth.NewVerifier(devauth.Config{
			UserID: cfg.Auth.DevAuth.UserID,
			Email:  cfg.Auth.DevAuth.Email,
			Name:   cfg.Auth.DevAuth.Name,
		})
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("failed to create dev verifier, auth disabled", "error", err)
			}
			return nil
		}
		return v

	case config.AuthModeOIDC:
		if cfg.Auth.OIDC.DiscoveryURL == "" || cfg.Auth.OIDC.ClientID == "" {
			if cfg.Logger != nil {
				cfg.Logger.Warn("oidc auth selected but required config missing; auth disabled",
					"discovery_url_empty", cfg.Auth.OIDC.DiscoveryURL == "",
					"client_id_empty", cfg.Auth.OIDC.ClientID == "",
				)
			}
			return nil
		}
		v, err := oidc.NewVerifier(oidc.VerifierConfig{
			ClientID:     cfg.Auth.OIDC.ClientID,
			DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
		})
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("failed to create OIDC verifier, auth disabled", "error", err)
			}
			return nil
		}
		return v

	default:
		return nil
	}
}
