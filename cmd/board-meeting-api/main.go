// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

// Package main is the board meeting service API that provides a RESTful API
// for managing board meetings and handles NATS messages for the service.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MochamaB/eboard-sub001/internal/handlers"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/messaging"
	"github.com/MochamaB/eboard-sub001/internal/logging"
	"github.com/MochamaB/eboard-sub001/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Set up JWT validator used by the API's bearer token authentication.
	jwtAuth, err := setupJWTAuth()
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up JWT authentication")
		os.Exit(1)
	}

	// Initialize email service (independent of NATS)
	emailService, err := setupEmailService(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up email service")
		return
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Set up trace export.
	telemetryShutdown, err := setupTelemetry(ctx, env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up telemetry")
		return
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			slog.With(logging.ErrKey, err).Error("error shutting down telemetry")
		}
	}()

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		SkipEtagValidation: env.SkipEtagValidation,
		SkipTimeCheck:      env.SkipTimeCheck,
		RetentionDays:      env.RetentionDays,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	eventLogService := service.NewEventLogService(repos.Event, messageBuilder)
	recurrenceService := service.NewRecurrenceService()
	meetingService := service.NewMeetingService(
		repos.Meeting,
		eventLogService,
		messageBuilder,
		messageBuilder,
		messageBuilder,
		emailService,
		recurrenceService,
		serviceConfig,
	)

	// Initialize handlers
	meetingHandler := handlers.NewMeetingHandler(meetingService)

	api := NewMeetingsAPI(meetingService, jwtAuth)

	httpServer := setupHTTPServer(flags, api, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubcriptions(ctx, meetingHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// Periodic sweep moving completed meetings past their retention window
	// into the archive.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := meetingService.ArchiveDueMeetings(ctx)
				if err != nil {
					slog.With(logging.ErrKey, err).Error("error archiving due meetings")
				} else if count > 0 {
					slog.With("count", count).Info("archived due meetings")
				}
			}
		}
	}()

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}
