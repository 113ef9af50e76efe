package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/config"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/providers/jetstream"
	"github.com/feral-file/ff-infusion/internal/relay"
	"github.com/feral-file/ff-infusion/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEventRelayConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "ff-infusion-event-relay",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Event Relay")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	// Connect to NATS JetStream
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:             cfg.NATS.URL,
		StreamName:      cfg.NATS.StreamName,
		SubjectPrefix:   cfg.NATS.SubjectPrefix,
		MaxReconnects:   cfg.NATS.MaxReconnects,
		ReconnectWait:   cfg.NATS.ReconnectWait,
		ConnectionName:  cfg.NATS.ConnectionName,
		DuplicateWindow: cfg.NATS.DuplicateWindow,
	}, adapter.NewNatsJetStream(), adapter.NewJSON())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Create relay
	eventRelay, err := relay.NewRelay(dataStore, publisher, relay.Config{
		PollInterval:         cfg.Relay.PollInterval,
		BatchSize:            cfg.Relay.BatchSize,
		RetryInitialInterval: cfg.Relay.RetryInitialInterval,
		RetryMaxElapsed:      cfg.Relay.RetryMaxElapsed,
	}, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event relay", zap.Error(err))
	}
	defer eventRelay.Close()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := eventRelay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "relay"))
		cancel()
	}

	// Give in-flight publishes time to finish
	time.Sleep(time.Second)

	logger.Info("Event Relay stopped")
}
