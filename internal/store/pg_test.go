package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/ff-infusion/internal/testutil/pgtest"
)

var testDB *gorm.DB

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	database, err := pgtest.Start(ctx)
	if err != nil {
		fmt.Printf("Failed to start test database: %v\n", err)
		os.Exit(1)
	}
	testDB = database.DB

	code := m.Run()

	database.Stop(ctx)
	os.Exit(code)
}

// initPGTestDB wraps each test in a transaction that is rolled back on cleanup.
// Store transactions become savepoints of it.
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is a no-op, the t.Cleanup rollback restores the database
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

func TestContextWithTx(t *testing.T) {
	ctx := context.Background()
	require.False(t, InTx(ctx))
	require.Equal(t, testDB.Statement.ConnPool, DBFromContext(ctx, testDB).Statement.ConnPool)

	tx := testDB.Begin()
	defer tx.Rollback()

	txCtx := ContextWithTx(ctx, tx)
	require.True(t, InTx(txCtx))
	require.Equal(t, tx.Statement.ConnPool, DBFromContext(txCtx, testDB).Statement.ConnPool)
}
