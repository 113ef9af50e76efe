package engine_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
)

func batchFixture(t *testing.T, n int, modify func(in *domain.CreateRealmInput)) *fixture {
	f := newFixture(t)
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	if modify != nil {
		modify(&input)
	}
	f.createRealm(t, input)
	f.mint(t, a0, units(int64(n)*1000))
	for i := 0; i < n; i++ {
		f.mintNFT(t, int64(i), a0)
	}
	return f
}

func TestBatchInfuse(t *testing.T) {
	const n = 100
	f := batchFixture(t, n, nil)

	inputs := make([]domain.InfuseInput, n)
	for i := range inputs {
		inputs[i] = infuseInput(int64(i), units(1000))
	}
	amounts, err := f.engine.BatchInfuse(context.Background(), a0, inputs, t0)
	require.NoError(t, err)
	require.Len(t, amounts, n)
	for _, amount := range amounts {
		assert.Equal(t, units(1000).String(), amount.String())
	}

	assert.Equal(t, units(n*1000).String(), f.balanceOf(t, escrow).String())
	assert.Equal(t, int64(0), f.balanceOf(t, a0).Int64())
	assert.Equal(t, units(1000).String(), f.tokenData(t, n-1, t0).Balance.String())
	assert.Len(t, f.events(t), 1+1+n, "realm created, infuser added and one event per item")
}

func TestBatchClaim(t *testing.T) {
	const n = 100
	f := batchFixture(t, n, nil)
	ctx := context.Background()

	infusions := make([]domain.InfuseInput, n)
	claims := make([]domain.ClaimInput, n)
	for i := range infusions {
		infusions[i] = infuseInput(int64(i), units(1000))
		claims[i] = claimInput(int64(i), units(100))
	}
	_, err := f.engine.BatchInfuse(ctx, a0, infusions, t0)
	require.NoError(t, err)

	amounts, err := f.engine.BatchClaim(ctx, a0, claims, t0.Add(day))
	require.NoError(t, err)
	require.Len(t, amounts, n)
	assert.Equal(t, units(n*100).String(), f.balanceOf(t, a0).String())
	assert.Equal(t, units(900).String(), f.tokenData(t, 0, t0.Add(day)).Balance.String())
}

func TestBatch_Empty(t *testing.T) {
	f := batchFixture(t, 0, nil)
	ctx := context.Background()

	amounts, err := f.engine.BatchInfuse(ctx, a0, nil, t0)
	require.NoError(t, err)
	assert.Empty(t, amounts)

	amounts, err = f.engine.BatchClaim(ctx, a0, []domain.ClaimInput{}, t0)
	require.NoError(t, err)
	assert.Empty(t, amounts)
	assert.Len(t, f.events(t), 2)
}

func TestBatchInfuse_FailureIsAtomic(t *testing.T) {
	f := batchFixture(t, 5, nil)

	inputs := []domain.InfuseInput{
		infuseInput(0, units(1000)),
		infuseInput(1, units(1000)),
		infuseInput(2, units(200000)),
		infuseInput(3, units(1000)),
	}
	_, err := f.engine.BatchInfuse(context.Background(), a0, inputs, t0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmountAboveMax)

	var itemErr *engine.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 2, itemErr.Index)

	for i := int64(0); i < 4; i++ {
		assert.False(t, f.tokenData(t, i, t0).Infused)
	}
	assert.Equal(t, int64(0), f.balanceOf(t, escrow).Int64())
	assert.Len(t, f.events(t), 2)
}

func TestBatchInfuse_RefusedTransferReportsItem(t *testing.T) {
	f := batchFixture(t, 3, nil)
	// enough for the first two items only
	inputs := []domain.InfuseInput{
		infuseInput(0, units(1000)),
		infuseInput(1, units(2000)),
		infuseInput(2, units(1000)),
	}
	_, err := f.engine.BatchInfuse(context.Background(), a0, inputs, t0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransfer)

	var itemErr *engine.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 2, itemErr.Index)

	assert.False(t, f.tokenData(t, 0, t0).Infused)
	assert.Equal(t, units(3000).String(), f.balanceOf(t, a0).String())
}

func TestBatchInfuse_LaterItemsSeeEarlierOnes(t *testing.T) {
	t.Run("multi infuse within a batch", func(t *testing.T) {
		f := batchFixture(t, 3, func(in *domain.CreateRealmInput) {
			in.Config.Constraints.AllowMultiInfuse = true
		})
		inputs := []domain.InfuseInput{
			infuseInput(0, units(1000)),
			infuseInput(0, units(1000)),
		}
		_, err := f.engine.BatchInfuse(context.Background(), a0, inputs, t0)
		require.NoError(t, err)
		assert.Equal(t, units(2000).String(), f.tokenData(t, 0, t0).Balance.String())
	})

	t.Run("duplicate item rejected when multi infuse is disabled", func(t *testing.T) {
		f := batchFixture(t, 3, nil)
		inputs := []domain.InfuseInput{
			infuseInput(0, units(1000)),
			infuseInput(0, units(1000)),
		}
		_, err := f.engine.BatchInfuse(context.Background(), a0, inputs, t0)
		assert.ErrorIs(t, err, domain.ErrMultiInfuse)

		var itemErr *engine.ItemError
		require.True(t, errors.As(err, &itemErr))
		assert.Equal(t, 1, itemErr.Index)
	})

	t.Run("capacity shared across items", func(t *testing.T) {
		f := batchFixture(t, 3, func(in *domain.CreateRealmInput) {
			in.Config.Constraints.AllowMultiInfuse = true
			in.Config.Constraints.MaxTokenBalance = units(1500)
		})
		inputs := []domain.InfuseInput{
			infuseInput(0, units(1000)),
			infuseInput(0, units(1000)),
		}
		amounts, err := f.engine.BatchInfuse(context.Background(), a0, inputs, t0)
		require.NoError(t, err)
		assert.Equal(t, units(500).String(), amounts[1].String())
		assert.Equal(t, units(1500).String(), f.balanceOf(t, escrow).String())
	})
}

func TestBatchClaim_FailureIsAtomic(t *testing.T) {
	f := batchFixture(t, 2, nil)
	ctx := context.Background()
	_, err := f.engine.BatchInfuse(ctx, a0, []domain.InfuseInput{
		infuseInput(0, units(1000)),
		infuseInput(1, units(1000)),
	}, t0)
	require.NoError(t, err)

	claims := []domain.ClaimInput{
		claimInput(0, units(100)),
		claimInput(1, units(100)),
		claimInput(0, units(1000)),
	}
	_, err = f.engine.BatchClaim(ctx, a0, claims, t0.Add(day/10))
	assert.ErrorIs(t, err, domain.ErrNothingClaimable)

	var itemErr *engine.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 2, itemErr.Index)

	assert.Equal(t, int64(0), f.balanceOf(t, a0).Int64())
	assert.Equal(t, units(1000).String(), f.tokenData(t, 0, t0.Add(day)).Balance.String())
}

func TestBatchClaim_InvalidTokenID(t *testing.T) {
	f := batchFixture(t, 1, nil)
	ctx := context.Background()
	_, err := f.engine.Infuse(ctx, a0, infuseInput(0, units(1000)), t0)
	require.NoError(t, err)

	claims := []domain.ClaimInput{claimInput(0, units(10)), {RealmID: 1, Collection: collection, Amount: big.NewInt(1)}}
	_, err = f.engine.BatchClaim(ctx, a0, claims, t0.Add(day))
	assert.ErrorIs(t, err, domain.ErrTokenDoesNotExist)

	var itemErr *engine.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 1, itemErr.Index)
}
