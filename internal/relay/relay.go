// Package relay moves committed engine events from the store outbox to the message broker
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/messaging"
	"github.com/feral-file/ff-infusion/internal/store"
)

// Config holds the configuration for the outbox relay
type Config struct {
	PollInterval time.Duration // Wait between polls when the outbox is drained
	BatchSize    int           // Events read per poll
	// RetryInitialInterval is the first publish retry delay
	RetryInitialInterval time.Duration
	// RetryMaxElapsed bounds the retries of a single event; zero retries forever
	RetryMaxElapsed time.Duration
}

// Relay defines the interface for the outbox relay
//
//go:generate mockgen -source=relay.go -destination=../mocks/relay.go -package=mocks -mock_names=Relay=MockRelay
type Relay interface {
	// Run relays events until ctx is cancelled
	Run(ctx context.Context) error
	// RelayOnce publishes one batch of pending events and returns how many were published
	RelayOnce(ctx context.Context) (int, error)
	// Close closes the relay and cleans up resources
	Close()
}

type relay struct {
	store     store.Store
	publisher messaging.Publisher
	config    Config
	clock     adapter.Clock
}

// NewRelay creates a new outbox relay
func NewRelay(st store.Store, pub messaging.Publisher, cfg Config, clock adapter.Clock) (Relay, error) {
	if cfg.PollInterval <= 0 {
		return nil, errors.New("poll interval must be positive")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.New("batch size must be positive")
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = 500 * time.Millisecond
	}

	return &relay{
		store:     st,
		publisher: pub,
		config:    cfg,
		clock:     clock,
	}, nil
}

// Run polls the outbox. A full batch is followed immediately by the next poll.
func (r *relay) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting event relay",
		zap.Duration("pollInterval", r.config.PollInterval),
		zap.Int("batchSize", r.config.BatchSize),
	)

	for {
		n, err := r.RelayOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.InfoCtx(ctx, "Shutting down event relay")
				return ctx.Err()
			}
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to relay events"))
		}

		if err == nil && n == r.config.BatchSize {
			continue
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Shutting down event relay")
			return ctx.Err()
		case <-r.clock.After(r.config.PollInterval):
		}
	}
}

func (r *relay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.store.PendingEvents(ctx, r.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to read pending events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]string, 0, len(events))
	var publishErr error
	for _, event := range events {
		if err := r.publishWithRetry(ctx, event.ID, func() error {
			return r.publisher.Publish(ctx, event)
		}); err != nil {
			publishErr = fmt.Errorf("failed to publish event %s: %w", event.ID, err)
			break
		}
		published = append(published, event.ID)
	}

	// events published before a failure are marked so that order is kept on the next poll
	if len(published) > 0 {
		if err := r.store.MarkEventsPublished(ctx, published, r.clock.Now()); err != nil {
			return 0, fmt.Errorf("failed to mark events published: %w", err)
		}
		logger.DebugCtx(ctx, "Events relayed", zap.Int("count", len(published)))
	}

	return len(published), publishErr
}

// publishWithRetry retries a publish with exponential backoff
func (r *relay) publishWithRetry(ctx context.Context, eventID string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.RetryInitialInterval
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = r.config.RetryMaxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Event publish failed, retrying",
			zap.String("id", eventID),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}
	return nil
}

// Close closes the relay and its publisher
func (r *relay) Close() {
	r.publisher.Close()
}
