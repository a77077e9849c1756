// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/auth"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/email"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/telemetry"
)

// setupJWTAuth configures JWT authentication for the service
func setupJWTAuth() (*auth.JWTAuth, error) {
	jwtAuthConfig := auth.JWTAuthConfig{
		JWKSURL:            os.Getenv("JWKS_URL"),
		Audience:           os.Getenv("JWT_AUDIENCE"),
		MockLocalPrincipal: os.Getenv("JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL"),
	}
	return auth.NewJWTAuth(jwtAuthConfig)
}

// setupEmailService configures the email service. When email is disabled, or
// no SMTP host is configured, a no-op implementation is used so the rest of
// the service does not need to care.
func setupEmailService(env environment) (domain.EmailService, error) {
	if !env.EmailEnabled || env.SMTP.Host == "" {
		slog.Debug("email sending disabled, using no-op email service")
		return email.NewNoOpService(), nil
	}

	return email.NewSMTPService(email.SMTPConfig{
		Host:     env.SMTP.Host,
		Port:     env.SMTP.Port,
		From:     env.SMTP.From,
		Username: env.SMTP.Username,
		Password: env.SMTP.Password,
	})
}

// setupTelemetry installs the tracer provider and returns its shutdown function.
func setupTelemetry(ctx context.Context, env environment) (func(context.Context) error, error) {
	return telemetry.Setup(ctx, telemetry.Config{
		Endpoint: env.OTelEndpoint,
		Insecure: env.OTelInsecure,
	})
}
