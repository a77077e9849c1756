// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

// Package auth validates bearer tokens issued by the eBoard auth gateway.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// GatewayClaims are the custom claims carried by tokens from the auth
// gateway. The principal is the authenticated user's UID.
type GatewayClaims struct {
	Principal string `json:"principal"`
	Email     string `json:"email,omitempty"`
}

// Validate checks that the required claims are present.
func (c *GatewayClaims) Validate(_ context.Context) error {
	if c.Principal == "" {
		return errors.New("principal must be provided")
	}
	return nil
}

// JWTAuthConfig configures token validation.
type JWTAuthConfig struct {
	// JWKSURL is the key set endpoint of the auth gateway.
	JWKSURL string
	// Audience expected in validated tokens.
	Audience string
	// MockLocalPrincipal, when set, bypasses validation entirely and
	// returns the configured principal. Local development only.
	MockLocalPrincipal string
}

// JWTAuth validates bearer tokens and extracts the principal.
type JWTAuth struct {
	config    JWTAuthConfig
	validator *validator.Validator
}

const (
	defaultJWKSURL  = "http://auth-gateway:4457/.well-known/jwks"
	defaultAudience = "eboard-meetings-api"
)

// NewJWTAuth creates a JWT authenticator backed by a caching JWKS provider.
func NewJWTAuth(config JWTAuthConfig) (*JWTAuth, error) {
	if config.JWKSURL == "" {
		config.JWKSURL = defaultJWKSURL
	}
	if config.Audience == "" {
		config.Audience = defaultAudience
	}

	issuerURL, err := url.Parse(config.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS URL: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.PS256,
		issuerURL.String(),
		[]string{config.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &GatewayClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT validator: %w", err)
	}

	return &JWTAuth{
		config:    config,
		validator: jwtValidator,
	}, nil
}

// ParsePrincipal validates the bearer token and returns the principal UID.
func (a *JWTAuth) ParsePrincipal(ctx context.Context, token string, logger *slog.Logger) (string, error) {
	if a.config.MockLocalPrincipal != "" {
		logger.WarnContext(ctx, "using mock principal, skipping token validation",
			"principal", a.config.MockLocalPrincipal)
		return a.config.MockLocalPrincipal, nil
	}

	if a.validator == nil {
		return "", errors.New("JWT validator is not configured")
	}

	parsed, err := a.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := parsed.(*validator.ValidatedClaims)
	if !ok {
		return "", errors.New("unexpected token claims type")
	}

	custom, ok := claims.CustomClaims.(*GatewayClaims)
	if !ok {
		return "", errors.New("missing gateway claims")
	}

	return custom.Principal, nil
}
