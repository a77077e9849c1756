// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/MochamaB/eboard-sub001/internal/domain"
	"github.com/MochamaB/eboard-sub001/internal/domain/models"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/messaging"
	"github.com/MochamaB/eboard-sub001/internal/infrastructure/store"
	"github.com/MochamaB/eboard-sub001/internal/logging"
)

const (
	// natsConnectTimeout is how long to wait for the initial NATS connection.
	natsConnectTimeout = 10 * time.Second
	// natsShutdownTimeout bounds the NATS drain during graceful shutdown.
	natsShutdownTimeout = 25 * time.Second
	// httpShutdownTimeout bounds the HTTP server drain during graceful shutdown.
	httpShutdownTimeout = 25 * time.Second
)

// setupNATS establishes the NATS connection used for both the key-value
// stores and the service's messaging.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	// The wait group is decremented by the closed handler once the drain
	// triggered by gracefulShutdown completes.
	gracefulCloseWG.Add(1)

	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Timeout(natsConnectTimeout),
		nats.DrainTimeout(natsShutdownTimeout),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.With("nats_url", env.NatsURL).Debug("NATS connection established")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).Error("async NATS error")
			} else {
				slog.With(logging.ErrKey, err).Error("async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			slog.With(logging.ErrKey, conn.LastError()).Info("NATS connection closed")
			gracefulCloseWG.Done()
			// If the connection dropped for good without a shutdown signal,
			// terminate so the orchestrator restarts the service.
			select {
			case done <- os.Interrupt:
			default:
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", env.NatsURL, err)
	}

	select {
	case <-ctx.Done():
		natsConn.Close()
		return nil, ctx.Err()
	default:
	}

	return natsConn, nil
}

// repositories holds the key-value backed repositories of the service.
type repositories struct {
	Meeting *store.NatsMeetingRepository
	Event   *store.NatsMeetingEventRepository
}

// getKeyValueStores binds the JetStream key-value buckets used by the service.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	meetingsKV, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: store.KVStoreNameMeetings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket %s: %w", store.KVStoreNameMeetings, err)
	}

	eventsKV, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: store.KVStoreNameMeetingEvents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket %s: %w", store.KVStoreNameMeetingEvents, err)
	}

	return &repositories{
		Meeting: store.NewNatsMeetingRepository(meetingsKV),
		Event:   store.NewNatsMeetingEventRepository(eventsKV),
	}, nil
}

// createNatsSubcriptions creates the queue subscriptions for the subjects
// this service answers on.
func createNatsSubcriptions(ctx context.Context, handler domain.MessageHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.MeetingGetTitleSubject,
		models.MeetingGetStatusSubject,
	}

	for _, subject := range subjects {
		_, err := natsConn.QueueSubscribe(subject, models.MeetingsAPIQueue, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, messaging.NewNatsMessage(msg))
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
		}
		slog.With("subject", subject, "queue", models.MeetingsAPIQueue).Debug("subscribed to NATS subject")
	}

	return nil
}

// gracefulShutdown drains the HTTP server and the NATS connection, then waits
// for all shutdown work to finish.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	// The HTTP listener goroutine holds a wait group slot released here, after
	// Shutdown has let in-flight requests finish.
	gracefulCloseWG.Done()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
			natsConn.Close()
		}
	}

	gracefulCloseWG.Wait()
	slog.Info("shutdown complete")
}
