package executor_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-infusion/internal/api/shared/errors"
	"github.com/feral-file/ff-infusion/internal/api/shared/executor"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
	"github.com/feral-file/ff-infusion/internal/ledger"
	"github.com/feral-file/ff-infusion/internal/mocks"
	"github.com/feral-file/ff-infusion/internal/nft"
	"github.com/feral-file/ff-infusion/internal/store"
)

var (
	caller     = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	other      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	collection = common.HexToAddress("0x0000000000000000000000000000000000000721")
	token      = common.HexToAddress("0x00000000000000000000000000000000000e2020")
	escrow     = common.HexToAddress("0x00000000000000000000000000000000000e5c00")

	now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl     *gomock.Controller
	engine   *mocks.MockEngine
	clock    *mocks.MockClock
	executor executor.Executor
}

// setupTestExecutor creates all mocks and the executor for testing
func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:   ctrl,
		engine: mocks.NewMockEngine(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.executor = executor.NewExecutor(tm.engine, tm.clock)
	return tm
}

// tearDownTestExecutor cleans up the test mocks
func tearDownTestExecutor(mocks *testExecutorMocks) {
	mocks.ctrl.Finish()
}

func TestExecutor_CreateRealm(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	req := dto.CreateRealmRequest{Name: "realm", Token: token.Hex(), DailyRate: "10"}
	tm.engine.EXPECT().CreateRealm(gomock.Any(), caller, gomock.Any(), now).
		DoAndReturn(func(_ context.Context, _ common.Address, input domain.CreateRealmInput, _ time.Time) (uint64, error) {
			assert.Equal(t, token, input.Config.Token)
			assert.Equal(t, big.NewInt(10), input.Config.DailyRate)
			return 5, nil
		})

	resp, err := tm.executor.CreateRealm(context.Background(), caller, req)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), resp.RealmID)
}

func TestExecutor_CreateRealm_InvalidRequestNeverReachesEngine(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	_, err := tm.executor.CreateRealm(context.Background(), caller, dto.CreateRealmRequest{Token: "0xzz"})
	var apiErr *apierrors.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestExecutor_ModifyRealm(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	err := tm.executor.ModifyRealm(context.Background(), caller, 1, dto.ModifyRealmRequest{})
	require.Error(t, err)

	tm.engine.EXPECT().ModifyRealm(gomock.Any(), caller, gomock.Any(), now).
		DoAndReturn(func(_ context.Context, _ common.Address, input domain.ModifyRealmInput, _ time.Time) error {
			assert.Equal(t, uint64(1), input.RealmID)
			assert.Equal(t, []common.Address{other}, input.InfusersToAdd)
			assert.Empty(t, input.AdminsToAdd)
			return domain.ErrNotRealmAdmin
		})

	err = tm.executor.ModifyRealm(context.Background(), caller, 1, dto.ModifyRealmRequest{InfusersToAdd: []string{other.Hex()}})
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestExecutor_SetInfusionProxy(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.engine.EXPECT().AllowInfusionProxy(gomock.Any(), caller, uint64(1), other, now).Return(nil)
	tm.engine.EXPECT().DenyInfusionProxy(gomock.Any(), caller, uint64(1), other, now).Return(nil)

	require.NoError(t, tm.executor.SetInfusionProxy(context.Background(), caller, 1, other, true))
	require.NoError(t, tm.executor.SetInfusionProxy(context.Background(), caller, 1, other, false))
}

func TestExecutor_GetMembership(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)
	ctx := context.Background()

	tm.engine.EXPECT().IsAdmin(gomock.Any(), uint64(1), other).Return(true, nil)
	tm.engine.EXPECT().IsInfuser(gomock.Any(), uint64(1), other).Return(false, nil)
	tm.engine.EXPECT().IsCollection(gomock.Any(), uint64(1), other).Return(false, domain.ErrInvalidRealm)
	tm.engine.EXPECT().IsInfusionProxy(gomock.Any(), uint64(1), other).Return(true, nil)

	resp, err := tm.executor.GetMembership(ctx, 1, domain.RoleAdmin, other)
	require.NoError(t, err)
	assert.True(t, resp.Member)
	assert.Equal(t, other.Hex(), resp.Address)

	resp, err = tm.executor.GetMembership(ctx, 1, domain.RoleInfuser, other)
	require.NoError(t, err)
	assert.False(t, resp.Member)

	_, err = tm.executor.GetMembership(ctx, 1, domain.RoleCollection, other)
	assert.ErrorIs(t, err, domain.ErrInvalidRealm)

	resp, err = tm.executor.GetMembership(ctx, 1, domain.RoleProxy, other)
	require.NoError(t, err)
	assert.True(t, resp.Member)

	_, err = tm.executor.GetMembership(ctx, 1, domain.Role("owner"), other)
	assert.Error(t, err)
}

func TestExecutor_ListMembers(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.engine.EXPECT().Members(gomock.Any(), uint64(1), domain.RoleCollection).Return([]common.Address{collection}, nil)

	resp, err := tm.executor.ListMembers(context.Background(), 1, domain.RoleCollection)
	require.NoError(t, err)
	assert.Equal(t, []string{collection.Hex()}, resp.Members)
}

func TestExecutor_Claim_StampsClock(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	tm.engine.EXPECT().Claim(gomock.Any(), caller, domain.ClaimInput{
		RealmID:    1,
		Collection: collection,
		TokenID:    big.NewInt(3),
		Amount:     big.NewInt(50),
	}, now).Return(big.NewInt(40), nil)

	resp, err := tm.executor.Claim(context.Background(), caller, dto.ClaimRequest{RealmID: 1, Collection: collection.Hex(), TokenID: "3", Amount: "50"})
	require.NoError(t, err)
	assert.Equal(t, "40", resp.Amount)
}

func TestExecutor_BatchInfuse_PropagatesItemError(t *testing.T) {
	tm := setupTestExecutor(t)
	defer tearDownTestExecutor(tm)

	req := dto.BatchInfuseRequest{Items: []dto.InfuseRequest{
		{RealmID: 1, Collection: collection.Hex(), TokenID: "1", Amount: "10"},
		{RealmID: 1, Collection: collection.Hex(), TokenID: "2", Amount: "10"},
	}}
	tm.engine.EXPECT().BatchInfuse(gomock.Any(), caller, gomock.Len(2), now).
		Return(nil, &engine.ItemError{Index: 1, Err: domain.ErrNftNotOwned})

	_, err := tm.executor.BatchInfuse(context.Background(), caller, req)
	var itemErr *engine.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 1, itemErr.Index)
}

// =============================================================================
// Test: Executor over the in-memory engine
// =============================================================================

func TestExecutor_EndToEnd(t *testing.T) {
	ctx := context.Background()
	clock := adapter.NewFixedClock(now)
	l := ledger.NewMemory()
	nfts := nft.NewMemory()
	e, err := engine.New(engine.Config{Escrow: escrow}, store.NewMemoryStore(), l, nfts)
	require.NoError(t, err)
	exec := executor.NewExecutor(e, clock)

	require.NoError(t, l.Mint(ctx, token, caller, big.NewInt(100000)))
	require.NoError(t, l.Approve(ctx, token, caller, escrow, big.NewInt(100000)))
	require.NoError(t, nfts.Mint(collection, big.NewInt(1), caller))

	created, err := exec.CreateRealm(ctx, caller, dto.CreateRealmRequest{
		Name:      "realm",
		Infusers:  []string{caller.Hex()},
		Token:     token.Hex(),
		DailyRate: "864",
		Constraints: dto.ConstraintsRequest{
			MinInfusionAmount:   "1",
			MaxInfusionAmount:   "10000",
			MaxTokenBalance:     "10000",
			MinClaimAmount:      "0",
			RequireNftIsOwned:   true,
			AllowAllCollections: true,
		},
	})
	require.NoError(t, err)

	infused, err := exec.Infuse(ctx, caller, dto.InfuseRequest{RealmID: created.RealmID, Collection: collection.Hex(), TokenID: "1", Amount: "5000"})
	require.NoError(t, err)
	assert.Equal(t, "5000", infused.Amount)

	// 864 per day is one unit every 100 seconds
	clock.Advance(1000 * time.Second)
	key := domain.NewTokenKey(created.RealmID, collection, big.NewInt(1))
	data, err := exec.GetTokenData(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "10", data.Claimable)

	claimed, err := exec.Claim(ctx, caller, dto.ClaimRequest{RealmID: created.RealmID, Collection: collection.Hex(), TokenID: "1", Amount: "100"})
	require.NoError(t, err)
	assert.Equal(t, "10", claimed.Amount)

	data, err = exec.GetTokenData(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "4990", data.Balance)
	assert.Equal(t, "0", data.Claimable)
}
