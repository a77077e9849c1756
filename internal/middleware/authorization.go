// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"net/http"

	"github.com/MochamaB/eboard-sub001/pkg/constants"
)

// AuthorizationMiddleware copies the authorization header and the acting
// principal header into the request context so that downstream messaging
// can forward them to other services.
func AuthorizationMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if authorization := r.Header.Get(constants.AuthorizationHeader); authorization != "" {
				ctx = context.WithValue(ctx, constants.AuthorizationContextID, authorization)
			}

			if principal := r.Header.Get(constants.XOnBehalfOfHeader); principal != "" {
				ctx = context.WithValue(ctx, constants.PrincipalContextID, principal)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
