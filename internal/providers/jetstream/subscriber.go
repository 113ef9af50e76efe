package jetstream

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/messaging"
)

type subscriber struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	json   adapter.JSON
	config Config
	filter string
}

// NewSubscriber connects to NATS and returns a durable subscriber for the event stream.
// An empty event type subscribes to every event.
func NewSubscriber(cfg Config, eventType domain.EventType, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Subscriber, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	nc, js, err := natsJS.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	filter := cfg.SubjectPrefix + ".>"
	if eventType != "" {
		filter = Subject(cfg.SubjectPrefix, eventType)
	}

	return &subscriber{
		nc:     nc,
		js:     js,
		json:   jsonAdapter,
		config: cfg,
		filter: filter,
	}, nil
}

// Subscribe consumes events until ctx is cancelled
func (s *subscriber) Subscribe(ctx context.Context, handler messaging.EventHandler) error {
	logger.InfoCtx(ctx, "Starting event subscription",
		zap.String("stream", s.config.StreamName),
		zap.String("consumer", s.config.ConsumerName),
		zap.String("subject", s.filter),
	)

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       s.config.AckWait,
		MaxDeliver:    s.config.MaxDeliver,
		FilterSubject: s.filter,
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Stopping event subscription")
			return ctx.Err()
		case msg := <-msgChan:
			s.handleMessage(ctx, msg, handler)
		}
	}
}

// handleMessage delivers messages in stream order: the handler runs inline
func (s *subscriber) handleMessage(ctx context.Context, msg adapter.Message, handler messaging.EventHandler) {
	var event domain.Event
	if err := s.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal event"), zap.String("subject", msg.Subject()))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	fields := []zap.Field{
		zap.String("id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Uint64("realmID", event.RealmID),
	}
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		fields = append(fields, zap.Uint64("deliveryCount", metadata.NumDelivered))
	}
	logger.DebugCtx(ctx, "Received event", fields...)

	if err := handler(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, append(fields, zap.String("message", "Failed to handle event"))...)
		// NAK to retry
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (s *subscriber) Close() {
	if s.nc == nil {
		return
	}

	s.nc.Close()
}
