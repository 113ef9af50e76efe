package store

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/domain"
)

func TestMemoryStore(t *testing.T) {
	RunStoreTests(t, func(t *testing.T) Store { return NewMemoryStore() }, func(t *testing.T) {})
}

func TestMemoryStore_FirstRealmIDIsOne(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, uint64(1), createTestRealm(t, store, "one"))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	key := domain.NewTokenKey(1, testCollection, big.NewInt(1))

	require.NoError(t, store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.SaveTokenRecord(ctx, &domain.TokenRecord{Key: key, Balance: big.NewInt(100)})
	}))

	record, err := store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	record.Balance.SetInt64(1)

	again, err := store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(100), again.Balance.Int64())
}

func TestMemoryStore_ReturnsRealmCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id := createTestRealm(t, store, "copies")

	realm, err := store.GetRealm(ctx, id)
	require.NoError(t, err)
	want := realm.Config.DailyRate.String()
	realm.Config.DailyRate.SetInt64(1)
	realm.Config.Constraints.MaxTokenBalance.SetInt64(1)
	realm.Name = "changed"

	again, err := store.GetRealm(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, again.Config.DailyRate.String())
	assert.NotEqual(t, int64(1), again.Config.Constraints.MaxTokenBalance.Int64())
	assert.Equal(t, "copies", again.Name)
}

func TestMemoryStore_SerialisesTransactions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	key := domain.NewTokenKey(1, testCollection, big.NewInt(1))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
				record, err := tx.GetTokenRecord(ctx, key)
				if err != nil {
					return err
				}
				if record == nil {
					record = &domain.TokenRecord{Key: key, Balance: new(big.Int)}
				}
				record.Balance.Add(record.Balance, big.NewInt(1))
				return tx.SaveTokenRecord(ctx, record)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	record, err := store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(50), record.Balance.Int64())
}
