package jetstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWait        time.Duration
	MaxDeliver     int
	// DuplicateWindow bounds how long JetStream remembers message ids
	DuplicateWindow time.Duration
}

func (c Config) validate() error {
	if c.URL == "" {
		return errors.New("nats url is required")
	}
	if c.StreamName == "" {
		return errors.New("stream name is required")
	}
	if c.SubjectPrefix == "" {
		return errors.New("subject prefix is required")
	}
	return nil
}

// connectOptions returns the connection options shared by publisher and subscriber
func connectOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// streamConfig captures every event subject under the prefix
func streamConfig(cfg Config) jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{cfg.SubjectPrefix + ".>"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		Duplicates: cfg.DuplicateWindow,
	}
}

type publisher struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	prefix string
	json   adapter.JSON
}

// NewPublisher connects to NATS, makes sure the event stream exists and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	nc, js, err := natsJS.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.EnsureStream(ctx, streamConfig(cfg)); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:     nc,
		js:     js,
		prefix: cfg.SubjectPrefix,
		json:   jsonAdapter,
	}, nil
}

// Publish publishes an engine event to NATS JetStream.
// The event id is the message id, so JetStream drops a republished event.
func (p *publisher) Publish(ctx context.Context, event domain.Event) error {
	if event.ID == "" {
		return errors.New("event id is required")
	}
	logger.DebugCtx(ctx, "Publishing Nats event", zap.String("id", event.ID), zap.String("type", string(event.Type)))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, Subject(p.prefix, event.Type), data, jetstream.WithMsgID(event.ID))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if ack != nil && ack.Duplicate {
		logger.DebugCtx(ctx, "Event already published", zap.String("id", event.ID))
	}

	return nil
}

// Subject returns the subject an event type is published on.
// Format: {prefix}.{event_type}, e.g. infusion.claimed
func Subject(prefix string, eventType domain.EventType) string {
	return fmt.Sprintf("%s.%s", prefix, eventType)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
