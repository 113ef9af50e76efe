package main

import (
	"context"
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

	"github.com/feral-file/ff-infusion/internal/access"
	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/api/middleware"
	"github.com/feral-file/ff-infusion/internal/api/server"
	"github.com/feral-file/ff-infusion/internal/api/shared/executor"
	"github.com/feral-file/ff-infusion/internal/config"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
	"github.com/feral-file/ff-infusion/internal/ledger"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/nft"
	"github.com/feral-file/ff-infusion/internal/ratelimit"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/vesting"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
		Service:         "ff-infusion-api",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Infusion API", zap.String("storage", cfg.Storage.Driver))

	clock := adapter.NewClock()

	// Initialize storage and the token ledger
	var dataStore store.Store
	var tokenLedger ledger.Ledger
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.WarnCtx(ctx, "Using in-memory storage, state is lost on restart")
		dataStore = store.NewMemoryStore()
		tokenLedger = ledger.NewMemory()
	default:
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
		}
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to database",
			zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
			zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		)
		dataStore = store.NewPGStore(db)
		tokenLedger = ledger.NewPG(db)
	}

	// Initialize the NFT registry
	var registry nft.Registry
	if cfg.Ethereum.RPCURL != "" {
		ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err))
		}
		defer ethClient.Close()

		if err := checkChainID(ctx, ethClient, cfg.Ethereum.ChainID); err != nil {
			logger.FatalCtx(ctx, "Ethereum RPC is on the wrong chain", zap.Error(err))
		}
		registry = nft.NewERC721Registry(ethClient, nft.ERC721Config{RetryMaxElapsed: cfg.Ethereum.RetryMaxElapsed})
		logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("chain_id", string(cfg.Ethereum.ChainID)))
	} else {
		logger.WarnCtx(ctx, "Ethereum RPC not configured, using in-memory NFT registry")
		registry = nft.NewMemory()
	}

	// Initialize the engine
	escrow, err := domain.ParseAddress(cfg.Engine.EscrowAddress)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid escrow address", zap.Error(err))
	}
	infusionEngine, err := engine.New(engine.Config{
		Escrow:              escrow,
		ProxyPolicy:         access.ProxyPolicy(cfg.Engine.ProxyPolicy),
		FloorPolicy:         vesting.FloorPolicy(cfg.Engine.ClaimFloorPolicy),
		PrefetchConcurrency: cfg.Ethereum.PrefetchConcurrency,
	}, dataStore, tokenLedger, registry)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create engine", zap.Error(err))
	}

	// Initialize the rate limiter
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		var redisClient adapter.RedisClient
		if cfg.RateLimit.RedisAddr != "" {
			redisClient = adapter.NewRedisClient(adapter.RedisOptions{
				Addr:     cfg.RateLimit.RedisAddr,
				Password: cfg.RateLimit.RedisPassword,
				DB:       cfg.RateLimit.RedisDB,
			})
		}
		limiter, err = ratelimit.NewLimiter(cfg.RateLimit, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
		defer func() {
			if err := limiter.Close(); err != nil {
				logger.Error(err, zap.String("component", "rate_limiter"))
			}
		}()
	}

	// Create and start server
	srv := server.New(server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, executor.NewExecutor(infusionEngine, clock), middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	}, limiter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}

// checkChainID verifies the RPC node serves the configured CAIP-2 chain
func checkChainID(ctx context.Context, client adapter.EthClient, want domain.Chain) error {
	id, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain id: %w", err)
	}
	if got := domain.Chain(fmt.Sprintf("eip155:%s", id.String())); got != want {
		return fmt.Errorf("chain id mismatch: got %s, want %s", got, want)
	}
	return nil
}
