// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MochamaB/eboard-sub001/internal/logging"
	"github.com/MochamaB/eboard-sub001/internal/middleware"
)

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(flags flags, api *MeetingsAPI, gracefulCloseWG *sync.WaitGroup) *http.Server {
	router := chi.NewRouter()

	router.Get("/livez", api.Livez)
	router.Get("/readyz", api.Readyz)

	router.Route("/meetings", func(r chi.Router) {
		r.Post("/", api.CreateMeeting)
		r.Get("/", api.GetMeetings)
		r.Route("/{uid}", func(r chi.Router) {
			r.Get("/", api.GetOneMeeting)
			r.Get("/events", api.GetMeetingEvents)
			r.Post("/submit", api.SubmitMeeting)
			r.Post("/approve", api.ApproveMeeting)
			r.Post("/reject", api.RejectMeeting)
			r.Post("/resubmit", api.ResubmitMeeting)
			r.Post("/start", api.StartMeeting)
			r.Post("/end", api.EndMeeting)
			r.Post("/archive", api.ArchiveMeeting)
			r.Post("/cancel", api.CancelMeeting)
		})
	})

	router.Post("/recurrence/preview", api.PreviewRecurrence)

	var handler http.Handler = router

	// Add HTTP middleware
	// Note: Order matters - AuthorizationMiddleware should come first in the chain,
	// so it should be the last middleware added to the handler since it is executed in reverse order.
	handler = middleware.RequestLoggerMiddleware()(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = middleware.AuthorizationMiddleware()(handler)
	handler = otelhttp.NewHandler(handler, "board-meeting-api")

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
