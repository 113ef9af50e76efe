package ledger_test

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/ff-infusion/internal/ledger"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/testutil/pgtest"
)

var testDB *gorm.DB

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

// newPGLedger scopes the ledger to a transaction rolled back on cleanup
func newPGLedger(t *testing.T) (context.Context, ledger.Funding) {
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
	})
	return ctxBase, ledger.NewPG(tx)
}

func TestPG(t *testing.T) {
	runFundingTests(t, newPGLedger)
}

func TestPG_JoinsStoreTransaction(t *testing.T) {
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	l := ledger.NewPG(testDB)
	s := store.NewPGStore(tx)
	require.NoError(t, l.Mint(store.ContextWithTx(ctxBase, tx), token, escrow, big.NewInt(50)))

	boom := fmt.Errorf("engine rejected")
	err := s.WithTx(ctxBase, func(ctx context.Context, _ store.Tx) error {
		if err := l.Settle(ctx, []ledger.Transfer{{Token: token, From: escrow, To: bob, Amount: big.NewInt(20)}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	txCtx := store.ContextWithTx(ctxBase, tx)
	assertBalance(t, txCtx, l, escrow, 50)
	assertBalance(t, txCtx, l, bob, 0)

	err = s.WithTx(ctxBase, func(ctx context.Context, _ store.Tx) error {
		return l.Settle(ctx, []ledger.Transfer{{Token: token, From: escrow, To: bob, Amount: big.NewInt(20)}})
	})
	require.NoError(t, err)
	assertBalance(t, txCtx, l, escrow, 30)
	assertBalance(t, txCtx, l, bob, 20)
}
