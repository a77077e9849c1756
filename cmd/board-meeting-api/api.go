// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/auth"
	"github.com/MochamaB/eboard-sub001/internal/logging"
	"github.com/MochamaB/eboard-sub001/internal/service"
	"github.com/MochamaB/eboard-sub001/pkg/constants"
)

// MeetingsAPI is the HTTP surface of the board meeting service.
type MeetingsAPI struct {
	service  *service.MeetingService
	auth     *auth.JWTAuth
	validate *validator.Validate
}

// NewMeetingsAPI creates a new MeetingsAPI.
func NewMeetingsAPI(meetingService *service.MeetingService, jwtAuth *auth.JWTAuth) *MeetingsAPI {
	return &MeetingsAPI{
		service:  meetingService,
		auth:     jwtAuth,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForError maps a domain error to the HTTP status code it renders as.
func statusForError(err error) int {
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		return http.StatusBadRequest
	case domain.ErrorTypeAuthorization:
		return http.StatusForbidden
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeConflict, domain.ErrorTypeInvalidTransition:
		return http.StatusConflict
	case domain.ErrorTypeRecurrenceBounds:
		return http.StatusUnprocessableEntity
	case domain.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *MeetingsAPI) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "internal error handling request", logging.ErrKey, err)
	}
	s.writeJSON(w, r, code, errorResponse{
		Code:    strconv.Itoa(code),
		Message: err.Error(),
	})
}

func (s *MeetingsAPI) writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "error encoding response", logging.ErrKey, err)
	}
}

// decodeAndValidate decodes the request body into payload and runs the
// struct validation rules on it.
func (s *MeetingsAPI) decodeAndValidate(r *http.Request, payload any) error {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return domain.NewValidationError("invalid request body", err)
	}
	if err := s.validate.Struct(payload); err != nil {
		return domain.NewValidationError("request validation failed", err)
	}
	return nil
}

// principal resolves the acting user from the request's bearer token.
func (s *MeetingsAPI) principal(r *http.Request) (string, error) {
	authorization, ok := r.Context().Value(constants.AuthorizationContextID).(string)
	if !ok || authorization == "" {
		return "", domain.NewAuthorizationError("missing authorization header")
	}

	token := strings.TrimPrefix(authorization, "Bearer ")
	token = strings.TrimPrefix(token, "bearer ")

	principal, err := s.auth.ParsePrincipal(r.Context(), token, slog.Default())
	if err != nil {
		return "", domain.NewAuthorizationError("invalid bearer token", err)
	}
	return principal, nil
}

// Livez checks if the service is alive.
func (s *MeetingsAPI) Livez(w http.ResponseWriter, _ *http.Request) {
	// This always returns as long as the service is still running. As this
	// endpoint is expected to be used as a Kubernetes liveness check, this
	// service must likewise self-detect non-recoverable errors and
	// self-terminate.
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// Readyz checks if the service is able to take inbound requests.
func (s *MeetingsAPI) Readyz(w http.ResponseWriter, _ *http.Request) {
	if !s.service.ServiceReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("service unavailable\n"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}
