package engine_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/domain"
)

func TestInfuse(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	f.createRealm(t, input)
	f.mint(t, a0, units(60000))
	f.mintNFT(t, 420, a0)

	amount, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(50000)), t0)
	require.NoError(t, err)
	assert.Equal(t, units(50000).String(), amount.String())

	assert.Equal(t, units(10000).String(), f.balanceOf(t, a0).String())
	assert.Equal(t, units(50000).String(), f.balanceOf(t, escrow).String())

	data := f.tokenData(t, 420, t0)
	assert.True(t, data.Infused)
	assert.Equal(t, units(50000).String(), data.Balance.String())
	assert.Equal(t, t0.Unix(), data.LastClaimAt)
}

func TestInfuse_EmitsInfusedEvent(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	_, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(1000)), t0)
	require.NoError(t, err)

	event := f.lastEvent(t)
	assert.Equal(t, domain.EventTypeInfused, event.Type)
	assert.Equal(t, uint64(1), event.RealmID)
	assert.Equal(t, collection.Hex(), event.Collection)
	assert.Equal(t, "420", event.TokenID)
	assert.Equal(t, a0.Hex(), event.Infuser)
	assert.Equal(t, units(1000).String(), event.Amount)
	assert.Equal(t, "comment", event.Comment)
	assert.NotEmpty(t, event.ID)
}

func TestInfuse_ClampsToMaxTokenBalance(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Config.Constraints.MaxTokenBalance = units(60000)
	input.Config.Constraints.AllowPublicInfusion = true
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	amount, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(100000)), t0)
	require.NoError(t, err)
	assert.Equal(t, units(60000).String(), amount.String())

	assert.Equal(t, units(40000).String(), f.balanceOf(t, a0).String(), "only the clamped amount is taken")
	assert.Equal(t, units(60000).String(), f.tokenData(t, 420, t0).Balance.String())
	assert.Equal(t, units(60000).String(), f.lastEvent(t).Amount, "event carries the effective amount")
}

func TestInfuse_MultiInfusion(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	input.Config.Constraints.AllowMultiInfuse = true
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	for i := 0; i < 3; i++ {
		_, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(1000)), t0.Add(time.Duration(i)*day))
		require.NoError(t, err)
	}

	assert.Equal(t, units(97000).String(), f.balanceOf(t, a0).String())
	data := f.tokenData(t, 420, t0.Add(2*day))
	assert.Equal(t, units(3000).String(), data.Balance.String())
	assert.Equal(t, t0.Unix(), data.LastClaimAt, "topping up a funded token keeps its vesting clock")
	assert.Equal(t, units(2000).String(), data.Claimable.String())
}

func TestInfuse_ProxyInfusion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)
	require.NoError(t, f.engine.AllowInfusionProxy(ctx, a1, 1, a1, t0))

	_, err := f.engine.Infuse(ctx, a1, infuseInput(420, units(1000)), t0)
	require.NoError(t, err)

	assert.Equal(t, units(99000).String(), f.balanceOf(t, a0).String(), "the infuser pays")
	assert.Equal(t, a0.Hex(), f.lastEvent(t).Infuser)
}

func TestInfuse_PublicInfusion(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Config.Constraints.AllowPublicInfusion = true
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	_, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(1000)), t0)
	require.NoError(t, err)
	assert.Equal(t, units(99000).String(), f.balanceOf(t, a0).String())
	assert.Equal(t, units(1000).String(), f.tokenData(t, 420, t0).Balance.String())
}

func TestInfuse_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture, in *domain.CreateRealmInput)
		caller  common.Address
		noFunds bool
		infuse  func() domain.InfuseInput
		wantErr error
	}{
		{
			name:    "token not minted",
			infuse:  func() domain.InfuseInput { return infuseInput(421, units(1000)) },
			wantErr: domain.ErrTokenDoesNotExist,
		},
		{
			name: "not a token collection",
			infuse: func() domain.InfuseInput {
				in := infuseInput(420, units(1000))
				in.Collection = token
				return in
			},
			wantErr: domain.ErrTokenDoesNotExist,
		},
		{
			name: "invalid realm",
			infuse: func() domain.InfuseInput {
				in := infuseInput(420, units(1000))
				in.RealmID = 123
				return in
			},
			wantErr: domain.ErrInvalidRealm,
		},
		{
			name: "amount too high",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				in.Config.Constraints.MaxInfusionAmount = units(1000)
			},
			infuse:  func() domain.InfuseInput { return infuseInput(420, units(10000)) },
			wantErr: domain.ErrAmountAboveMax,
		},
		{
			name: "amount too low",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				in.Config.Constraints.MinInfusionAmount = units(1000)
			},
			infuse:  func() domain.InfuseInput { return infuseInput(420, units(10)) },
			wantErr: domain.ErrAmountBelowMin,
		},
		{
			name:    "zero amount",
			infuse:  func() domain.InfuseInput { return infuseInput(420, big.NewInt(0)) },
			wantErr: domain.ErrAmountBelowMin,
		},
		{
			name: "nft not owned by infuser",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				require.NoError(t, f.nfts.Transfer(collection, big.NewInt(420), a1))
			},
			infuse:  func() domain.InfuseInput { return infuseInput(420, units(1000)) },
			wantErr: domain.ErrNftNotOwned,
		},
		{
			name: "proxy infusion by non proxy",
			infuse: func() domain.InfuseInput {
				in := infuseInput(420, units(1000))
				in.Infuser = a1
				return in
			},
			wantErr: domain.ErrInvalidProxyInfusion,
		},
		{
			name: "proxy infusion by non proxy on the allowlist",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				in.Infusers = []common.Address{a0, a1}
			},
			infuse: func() domain.InfuseInput {
				in := infuseInput(420, units(1000))
				in.Infuser = a1
				return in
			},
			wantErr: domain.ErrInvalidProxyInfusion,
		},
		{
			name: "public infusion disabled",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				in.Infusers = nil
			},
			infuse:  func() domain.InfuseInput { return infuseInput(420, units(1000)) },
			wantErr: domain.ErrInvalidInfuser,
		},
		{
			name: "collection not allowed",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				in.Config.Constraints.AllowAllCollections = false
			},
			infuse:  func() domain.InfuseInput { return infuseInput(420, units(1000)) },
			wantErr: domain.ErrCollectionNotAllowed,
		},
		{
			name: "infuser without allowance",
			setup: func(t *testing.T, f *fixture, in *domain.CreateRealmInput) {
				in.Infusers = []common.Address{a2}
				in.Config.Constraints.RequireNftIsOwned = false
				f.mint(t, a2, units(100000))
			},
			caller: a2,
			infuse: func() domain.InfuseInput {
				in := infuseInput(420, units(1000))
				in.Infuser = a2
				return in
			},
			wantErr: domain.ErrTransfer,
		},
		{
			name:    "infuser without balance",
			noFunds: true,
			infuse:  func() domain.InfuseInput { return infuseInput(420, units(100000)) },
			wantErr: domain.ErrTransfer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mintNFT(t, 420, a0)
			input := createRealmInput()
			input.Infusers = []common.Address{a0}
			if tt.setup != nil {
				tt.setup(t, f, &input)
			}
			f.createRealm(t, input)
			if !tt.noFunds {
				f.mint(t, a0, units(100000))
			}
			before := len(f.events(t))

			caller := a0
			if tt.caller != (common.Address{}) {
				caller = tt.caller
			}
			_, err := f.engine.Infuse(context.Background(), caller, tt.infuse(), t0)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Len(t, f.events(t), before, "nothing emitted")
			assert.Equal(t, int64(0), f.balanceOf(t, escrow).Int64(), "nothing transferred")
			assert.False(t, f.tokenData(t, 420, t0).Infused, "nothing recorded")
		})
	}
}

func TestInfuse_MultiInfuseDisabled(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	_, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(1000)), t0)
	require.NoError(t, err)

	_, err = f.engine.Infuse(context.Background(), a0, infuseInput(420, units(1000)), t0)
	assert.ErrorIs(t, err, domain.ErrMultiInfuse)
	assert.ErrorIs(t, err, domain.ErrMultiInfuseDisabled)
}

func TestInfuse_AtCapacity(t *testing.T) {
	f := newFixture(t)
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	input.Config.Constraints.MaxTokenBalance = units(10000)
	input.Config.Constraints.AllowMultiInfuse = true
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	_, err := f.engine.Infuse(context.Background(), a0, infuseInput(420, units(10000)), t0)
	require.NoError(t, err)

	_, err = f.engine.Infuse(context.Background(), a0, infuseInput(420, units(10000)), t0)
	assert.ErrorIs(t, err, domain.ErrMaxTokenBalance)
	assert.ErrorIs(t, err, domain.ErrCapacity)
	assert.Equal(t, units(90000).String(), f.balanceOf(t, a0).String())
}

func TestInfuse_ReinfusingDrainedTokenRestartsVesting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := createRealmInput()
	input.Infusers = []common.Address{a0}
	input.Config.Constraints.AllowMultiInfuse = true
	f.createRealm(t, input)
	f.mint(t, a0, units(100000))
	f.mintNFT(t, 420, a0)

	_, err := f.engine.Infuse(ctx, a0, infuseInput(420, units(10000)), t0)
	require.NoError(t, err)

	drainedAt := t0.Add(10 * day)
	_, err = f.engine.Claim(ctx, a0, claimInput(420, units(10000)), drainedAt)
	require.NoError(t, err)
	assert.Equal(t, units(100000).String(), f.balanceOf(t, a0).String())
	assert.Equal(t, int64(0), f.tokenData(t, 420, drainedAt).Balance.Int64())

	reinfusedAt := drainedAt.Add(365 * day)
	_, err = f.engine.Infuse(ctx, a0, infuseInput(420, units(100000)), reinfusedAt)
	require.NoError(t, err)

	granted, err := f.engine.Claim(ctx, a0, claimInput(420, units(100000)), reinfusedAt.Add(day))
	require.NoError(t, err)
	assert.Equal(t, units(1000).String(), granted.String(), "only one day accrued since the refill")
	assert.Equal(t, units(1000).String(), f.balanceOf(t, a0).String())
	assert.Equal(t, units(99000).String(), f.tokenData(t, 420, reinfusedAt.Add(day)).Balance.String())
}
