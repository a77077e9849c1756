// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayClaimsValidate(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		wantErr   bool
	}{
		{
			name:      "valid principal",
			principal: "user-1",
			wantErr:   false,
		},
		{
			name:      "empty principal returns error",
			principal: "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &GatewayClaims{Principal: tt.principal}
			err := claims.Validate(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "principal must be provided")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewJWTAuth(t *testing.T) {
	tests := []struct {
		name    string
		config  JWTAuthConfig
		wantErr bool
	}{
		{
			name:    "default configuration",
			config:  JWTAuthConfig{},
			wantErr: false,
		},
		{
			name: "custom configuration",
			config: JWTAuthConfig{
				JWKSURL:  "http://custom:4457/.well-known/jwks",
				Audience: "custom-audience",
			},
			wantErr: false,
		},
		{
			name: "invalid JWKS URL",
			config: JWTAuthConfig{
				JWKSURL: "://invalid-url",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, err := NewJWTAuth(tt.config)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, auth)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, auth)
				assert.NotNil(t, auth.validator)
			}
		})
	}
}

func TestParsePrincipal(t *testing.T) {
	t.Run("mock mode returns configured principal", func(t *testing.T) {
		auth := &JWTAuth{
			config: JWTAuthConfig{
				MockLocalPrincipal: "test-user",
			},
		}

		principal, err := auth.ParsePrincipal(context.Background(), "any-token", slog.Default())

		assert.NoError(t, err)
		assert.Equal(t, "test-user", principal)
	})

	t.Run("nil validator returns error", func(t *testing.T) {
		auth := &JWTAuth{}

		_, err := auth.ParsePrincipal(context.Background(), "token", slog.Default())

		assert.Error(t, err)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		auth, err := NewJWTAuth(JWTAuthConfig{})
		require.NoError(t, err)

		_, err = auth.ParsePrincipal(context.Background(), "not-a-jwt", slog.Default())

		assert.Error(t, err)
	})
}
