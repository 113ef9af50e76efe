// Package pgtest starts the PostgreSQL database used by integration tests.
//
// An external database is used when TEST_DB_HOST is set (CI or local development),
// otherwise a throwaway postgres container is started with testcontainers.
package pgtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a migrated test database
type Database struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// Start connects to the test database and applies db/init_pg_db.sql
func Start(ctx context.Context) (*Database, error) {
	dsn, container, err := dataSource(ctx)
	if err != nil {
		return nil, err
	}

	d := &Database{container: container}
	d.DB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		d.Stop(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(d.DB); err != nil {
		d.Stop(ctx)
		return nil, err
	}

	return d, nil
}

// Stop terminates the container, if one was started
func (d *Database) Stop(ctx context.Context) {
	if d.container == nil {
		return
	}
	if err := d.container.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

func dataSource(ctx context.Context) (string, *postgres.PostgresContainer, error) {
	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			envOr("TEST_DB_PORT", "5432"),
			envOr("TEST_DB_USER", "postgres"),
			envOr("TEST_DB_PASSWORD", "postgres"),
			envOr("TEST_DB_NAME", "test_db"))
		fmt.Printf("Using external database: %s\n", host)
		return dsn, nil, nil
	}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	return dsn, container, nil
}

func migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaSQL, err := os.ReadFile(schemaPath()) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// schemaPath resolves db/init_pg_db.sql relative to this file so every package can use it
func schemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "init_pg_db.sql")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
