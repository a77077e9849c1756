// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MochamaB/eboard-sub001/pkg/constants"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("propagates incoming request ID", func(t *testing.T) {
		var gotRequestID string
		handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequestID, _ = r.Context().Value(constants.RequestIDContextID).(string)
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.Header.Set(constants.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", gotRequestID)
		assert.Equal(t, "req-123", rec.Header().Get(constants.RequestIDHeader))
	})

	t.Run("generates request ID when missing", func(t *testing.T) {
		var gotRequestID string
		handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRequestID, _ = r.Context().Value(constants.RequestIDContextID).(string)
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.NotEmpty(t, gotRequestID)
		_, err := uuid.Parse(gotRequestID)
		assert.NoError(t, err)
		assert.Equal(t, gotRequestID, rec.Header().Get(constants.RequestIDHeader))
	})
}

func TestAuthorizationMiddleware(t *testing.T) {
	t.Run("copies headers into context", func(t *testing.T) {
		var gotAuthorization, gotPrincipal string
		handler := AuthorizationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuthorization, _ = r.Context().Value(constants.AuthorizationContextID).(string)
			gotPrincipal, _ = r.Context().Value(constants.PrincipalContextID).(string)
		}))

		req := httptest.NewRequest(http.MethodPost, "/meetings", nil)
		req.Header.Set(constants.AuthorizationHeader, "Bearer token-abc")
		req.Header.Set(constants.XOnBehalfOfHeader, "user-1")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "Bearer token-abc", gotAuthorization)
		assert.Equal(t, "user-1", gotPrincipal)
	})

	t.Run("missing headers leave context empty", func(t *testing.T) {
		handler := AuthorizationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, r.Context().Value(constants.AuthorizationContextID))
			assert.Nil(t, r.Context().Value(constants.PrincipalContextID))
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
}

func TestRequestLoggerMiddleware(t *testing.T) {
	handler := RequestLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/meetings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
