package store

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var (
	testToken      = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testCollection = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testAdmin      = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testInfuser    = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

// buildTestRealm creates a realm with every numeric field set
func buildTestRealm(name string) *domain.Realm {
	return &domain.Realm{
		Name:        name,
		Description: "test realm",
		Config: domain.RealmConfig{
			Token:     testToken,
			DailyRate: big.NewInt(1000),
			Constraints: domain.RealmConstraints{
				MinInfusionAmount: big.NewInt(10),
				MaxInfusionAmount: new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil),
				MaxTokenBalance:   new(big.Int).Exp(big.NewInt(10), big.NewInt(31), nil),
				MinClaimAmount:    big.NewInt(5),
				AllowMultiInfuse:  true,
			},
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func createTestRealm(t *testing.T, store Store, name string) uint64 {
	var id uint64
	err := store.WithTx(context.Background(), func(ctx context.Context, tx Tx) error {
		var err error
		id, err = tx.CreateRealm(ctx, buildTestRealm(name))
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

// =============================================================================
// Test: Realms
// =============================================================================

func testRealms(t *testing.T, store Store) {
	ctx := context.Background()

	first := createTestRealm(t, store, "first")
	second := createTestRealm(t, store, "second")
	assert.Equal(t, first+1, second, "realm ids are sequential")

	realm, err := store.GetRealm(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, realm)
	assert.Equal(t, first, realm.ID)
	assert.Equal(t, "first", realm.Name)
	assert.Equal(t, "test realm", realm.Description)
	assert.Equal(t, testToken, realm.Config.Token)
	assert.Equal(t, "1000", realm.Config.DailyRate.String())
	assert.Equal(t, "10", realm.Config.Constraints.MinInfusionAmount.String())
	assert.Equal(t, "1000000000000000000000000000000", realm.Config.Constraints.MaxInfusionAmount.String())
	assert.Equal(t, "10000000000000000000000000000000", realm.Config.Constraints.MaxTokenBalance.String())
	assert.Equal(t, "5", realm.Config.Constraints.MinClaimAmount.String())
	assert.True(t, realm.Config.Constraints.AllowMultiInfuse)
	assert.False(t, realm.Config.Constraints.RequireNftIsOwned)

	missing, err := store.GetRealm(ctx, second+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// Test: Members
// =============================================================================

func testMembers(t *testing.T, store Store) {
	ctx := context.Background()
	realmID := createTestRealm(t, store, "members")

	err := store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		changed, err := tx.AddMember(ctx, realmID, domain.RoleAdmin, testAdmin)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = tx.AddMember(ctx, realmID, domain.RoleAdmin, testAdmin)
		require.NoError(t, err)
		assert.False(t, changed, "adding an existing member is a no-op")

		changed, err = tx.AddMember(ctx, realmID, domain.RoleInfuser, testAdmin)
		require.NoError(t, err)
		assert.True(t, changed, "sets are independent")

		ok, err := tx.IsMember(ctx, realmID, domain.RoleAdmin, testAdmin)
		require.NoError(t, err)
		assert.True(t, ok, "writes are visible inside the transaction")
		return nil
	})
	require.NoError(t, err)

	ok, err := store.IsMember(ctx, realmID, domain.RoleAdmin, testAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsMember(ctx, realmID, domain.RoleCollection, testAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	members, err := store.ListMembers(ctx, realmID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{testAdmin}, members)

	err = store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		changed, err := tx.RemoveMember(ctx, realmID, domain.RoleAdmin, testAdmin)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = tx.RemoveMember(ctx, realmID, domain.RoleAdmin, testAdmin)
		require.NoError(t, err)
		assert.False(t, changed, "removing an absent member is a no-op")
		return nil
	})
	require.NoError(t, err)

	ok, err = store.IsMember(ctx, realmID, domain.RoleAdmin, testAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	members, err = store.ListMembers(ctx, realmID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, members)
}

// =============================================================================
// Test: Token records
// =============================================================================

func testTokenRecords(t *testing.T, store Store) {
	ctx := context.Background()
	realmID := createTestRealm(t, store, "records")
	hugeID, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	key := domain.NewTokenKey(realmID, testCollection, hugeID)

	record, err := store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, record, "never infused")

	err = store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.SaveTokenRecord(ctx, &domain.TokenRecord{Key: key, Balance: big.NewInt(10000), LastClaimAt: 1700000000})
	})
	require.NoError(t, err)

	record, err = store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "10000", record.Balance.String())
	assert.Equal(t, int64(1700000000), record.LastClaimAt)
	assert.Equal(t, key.String(), record.Key.String())

	err = store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.SaveTokenRecord(ctx, &domain.TokenRecord{Key: key, Balance: big.NewInt(0), LastClaimAt: 1700086400})
	})
	require.NoError(t, err)

	record, err = store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, record, "drained records are kept")
	assert.Equal(t, int64(0), record.Balance.Int64())
	assert.Equal(t, int64(1700086400), record.LastClaimAt)

	other, err := store.GetTokenRecord(ctx, domain.NewTokenKey(realmID, testCollection, big.NewInt(1)))
	require.NoError(t, err)
	assert.Nil(t, other)
}

// =============================================================================
// Test: Transaction rollback
// =============================================================================

func testRollback(t *testing.T, store Store) {
	ctx := context.Background()
	realmID := createTestRealm(t, store, "rollback")
	key := domain.NewTokenKey(realmID, testCollection, big.NewInt(420))
	boom := errors.New("transfer refused")

	err := store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.AddMember(ctx, realmID, domain.RoleInfuser, testInfuser); err != nil {
			return err
		}
		if err := tx.SaveTokenRecord(ctx, &domain.TokenRecord{Key: key, Balance: big.NewInt(1), LastClaimAt: 1}); err != nil {
			return err
		}
		if err := tx.AppendEvents(ctx, []domain.Event{{Type: domain.EventTypeInfused, RealmID: realmID, OccurredAt: time.Now()}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ok, err := store.IsMember(ctx, realmID, domain.RoleInfuser, testInfuser)
	require.NoError(t, err)
	assert.False(t, ok)

	record, err := store.GetTokenRecord(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, record)

	events, err := store.PendingEvents(ctx, 0)
	require.NoError(t, err)
	for _, e := range events {
		assert.NotEqual(t, domain.EventTypeInfused, e.Type)
	}
}

// =============================================================================
// Test: Outbox
// =============================================================================

func testOutbox(t *testing.T, store Store) {
	ctx := context.Background()
	realmID := createTestRealm(t, store, "outbox")
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	err := store.WithTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.AppendEvents(ctx, []domain.Event{
			{Type: domain.EventTypeInfused, RealmID: realmID, Collection: testCollection.Hex(), TokenID: "1", Amount: "100", Infuser: testInfuser.Hex(), Comment: "gm", OccurredAt: at},
			{Type: domain.EventTypeClaimed, RealmID: realmID, Collection: testCollection.Hex(), TokenID: "1", Amount: "10", OccurredAt: at},
			{ID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Type: domain.EventTypeAdminAdded, RealmID: realmID, Account: testAdmin.Hex(), OccurredAt: at},
		})
	})
	require.NoError(t, err)

	pending, err := store.PendingEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, domain.EventTypeInfused, pending[0].Type)
	assert.Equal(t, domain.EventTypeClaimed, pending[1].Type)
	assert.Equal(t, "01HZZZZZZZZZZZZZZZZZZZZZZZ", pending[2].ID)
	assert.NotEmpty(t, pending[0].ID)
	assert.NotEqual(t, pending[0].ID, pending[1].ID)
	assert.Equal(t, "gm", pending[0].Comment)
	assert.Equal(t, "100", pending[0].Amount)
	assert.True(t, at.Equal(pending[0].OccurredAt))

	limited, err := store.PendingEvents(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	require.NoError(t, store.MarkEventsPublished(ctx, []string{pending[0].ID, pending[2].ID}, at.Add(time.Minute)))

	pending, err = store.PendingEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.EventTypeClaimed, pending[0].Type)

	require.NoError(t, store.MarkEventsPublished(ctx, nil, at))
}

// RunStoreTests runs the store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Realms", testRealms},
		{"Members", testMembers},
		{"TokenRecords", testTokenRecords},
		{"Rollback", testRollback},
		{"Outbox", testOutbox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
