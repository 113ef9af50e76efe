package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-infusion/internal/access"
	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/config"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
	"github.com/feral-file/ff-infusion/internal/ledger"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/nft"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/vesting"
)

var (
	configFile string
	envPath    string
	decimals   int32
	outputJSON bool

	cfg *config.CLIConfig
)

var rootCmd = &cobra.Command{
	Use:           "realmctl",
	Short:         "Operate infusion realms",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadCLIConfig(configFile, envPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return logger.Initialize(logger.Config{Debug: cfg.Debug, Service: "realmctl"})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/", "Path to environment files")
	rootCmd.PersistentFlags().Int32Var(&decimals, "decimals", 18, "Decimals of the realm token, used to print and parse amounts")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print JSON instead of a table")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// deps holds the collaborators of a command
type deps struct {
	store  store.Store
	ledger ledger.Funding
	engine engine.Engine
	close  func()
}

// openDeps connects to the database and builds the engine over it
func openDeps(ctx context.Context) (*deps, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.ConfigureConnectionPool(db, 4, 2, time.Hour, 10*time.Minute); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	closers := []func(){}
	var registry nft.Registry = nft.NewMemory()
	if cfg.Ethereum.RPCURL != "" {
		client, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
		}
		closers = append(closers, client.Close)
		registry = nft.NewERC721Registry(client, nft.ERC721Config{RetryMaxElapsed: cfg.Ethereum.RetryMaxElapsed})
	}

	escrow, err := domain.ParseAddress(cfg.Engine.EscrowAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid escrow address: %w", err)
	}

	st := store.NewPGStore(db)
	l := ledger.NewPG(db)
	e, err := engine.New(engine.Config{
		Escrow:              escrow,
		ProxyPolicy:         access.ProxyPolicy(cfg.Engine.ProxyPolicy),
		FloorPolicy:         vesting.FloorPolicy(cfg.Engine.ClaimFloorPolicy),
		PrefetchConcurrency: cfg.Ethereum.PrefetchConcurrency,
	}, st, l, registry)
	if err != nil {
		return nil, err
	}

	return &deps{
		store:  st,
		ledger: l,
		engine: e,
		close: func() {
			for _, c := range closers {
				c()
			}
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					logger.Error(err, zap.String("message", "Failed to close database"))
				}
			}
		},
	}, nil
}

// withDeps runs fn with the collaborators and closes them afterwards
func withDeps(cmd *cobra.Command, fn func(ctx context.Context, d *deps) error) error {
	ctx := cmd.Context()
	d, err := openDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(ctx, d)
}
