package oidc

// Package oidc provides the OIDC-backed identity verifier for hireline.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/hireline/hireline-api/internal/domain/auth"
	"golang.org/x/oauth2"
)

// ErrInvalidCredential is returned for every verification failure. Callers
// surface it as a generic "invalid credentials" message; the underlying
// provider reason is wrapped for logs only.
var ErrInvalidCredential = errors.New("invalid credentials")

// Verifier implements ports.TokenVerifier against an OIDC provider.
type Verifier struct {
	httpClient *http.Client

	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// VerifierConfig holds configuration for the OIDC verifier.
type VerifierConfig struct {
	ClientID     string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// NewVerifier creates a new OIDC verifier. Discovery happens once at
// construction; a failure here means the identity subsystem is
// misconfigured and the caller should degrade rather than crash.
func NewVerifier(config VerifierConfig) (*Verifier, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Verifier{
		httpClient:   httpClient,
		oidcProvider: op,
		verifier:     op.Verifier(&gooidc.Config{ClientID: config.ClientID}),
	}, nil
}

// Verify checks the presented identity token and maps its claims into a
// domain identity. Every failure mode collapses into ErrInvalidCredential.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return domainauth.Identity{}, ErrInvalidCredential
	}

	idTok, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	var claims idTokenClaims
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.Identity{}, fmt.Errorf("%w: parse claims: %w", ErrInvalidCredential, claimsErr)
	}

	subject := firstNonEmpty(claims.Sub, idTok.Subject)
	if subject == "" {
		return domainauth.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidCredential)
	}

	return domainauth.Identity{
		SubjectID: subject,
		FirstName: firstNonEmpty(claims.GivenName, splitFirst(claims.Name)),
		LastName:  firstNonEmpty(claims.FamilyName, splitLast(claims.Name)),
		Email:     claims.Email,
		Picture:   claims.Picture,
		IssuedAt:  idTok.IssuedAt,
		ExpiresAt: idTok.Expiry,
	}, nil
}

// idTokenClaims is a superset of the standard OIDC profile claims we read.
type idTokenClaims struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitFirst returns the first word of a full display name.
func splitFirst(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// splitLast returns everything after the first word of a full display name.
func splitLast(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
