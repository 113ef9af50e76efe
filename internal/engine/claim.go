package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/ledger"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/nft"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/vesting"
)

func (e *engine) Claim(ctx context.Context, caller common.Address, input domain.ClaimInput, now time.Time) (*big.Int, error) {
	amounts, err := e.claimAll(ctx, caller, []domain.ClaimInput{input}, now, false)
	if err != nil {
		logRejected(ctx, "claim", err)
		return nil, err
	}

	logger.InfoCtx(ctx, "Token claimed",
		zap.String("token", input.Key().String()),
		zap.String("caller", caller.Hex()),
		zap.String("amount", amounts[0].String()),
	)
	return amounts[0], nil
}

func (e *engine) BatchClaim(ctx context.Context, caller common.Address, inputs []domain.ClaimInput, now time.Time) ([]*big.Int, error) {
	if len(inputs) == 0 {
		return []*big.Int{}, nil
	}
	amounts, err := e.claimAll(ctx, caller, inputs, now, true)
	if err != nil {
		logRejected(ctx, "batchClaim", err)
		return nil, err
	}

	logger.InfoCtx(ctx, "Tokens claimed", zap.Int("count", len(amounts)), zap.String("caller", caller.Hex()))
	return amounts, nil
}

func (e *engine) claimAll(ctx context.Context, caller common.Address, inputs []domain.ClaimInput, now time.Time, batch bool) ([]*big.Int, error) {
	realmIDs := make([]uint64, len(inputs))
	for i, in := range inputs {
		realmIDs[i] = in.RealmID
	}
	realms, err := e.existingRealms(ctx, realmIDs)
	if err != nil {
		return nil, err
	}

	// items of unknown realms fail with ErrInvalidRealm under the lock without touching the registry
	queries := make([]nft.Query, 0, len(inputs))
	for _, in := range inputs {
		if in.TokenID == nil || !realms[in.RealmID] {
			continue
		}
		spender := caller
		queries = append(queries, nft.Query{Collection: in.Collection, TokenID: in.TokenID, Spender: &spender})
	}
	snapshot, err := nft.Prefetch(ctx, e.nfts, queries, e.config.PrefetchConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to query nft registry: %w", err)
	}

	amounts := make([]*big.Int, len(inputs))
	err = e.mutate(ctx, batch, func(ctx context.Context, tx store.Tx, m *mutation) error {
		for i, in := range inputs {
			m.item = i
			amount, err := e.claim(ctx, tx, snapshot, m, caller, in, now)
			if err != nil {
				if batch {
					return &ItemError{Index: i, Err: err}
				}
				return err
			}
			amounts[i] = amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// claim validates one claim against the state of tx, advances the record's
// virtual clock and queues its transfer and event. It returns the granted amount.
func (e *engine) claim(ctx context.Context, tx store.Tx, nfts nft.Registry, m *mutation, caller common.Address, input domain.ClaimInput, now time.Time) (*big.Int, error) {
	if input.TokenID == nil {
		return nil, domain.ErrTokenDoesNotExist
	}

	policy, err := e.policy(ctx, tx, input.RealmID)
	if err != nil {
		return nil, err
	}
	realm := policy.Realm()
	rate := realm.Config.DailyRate

	exists, err := nfts.Exists(ctx, input.Collection, input.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token existence: %w", err)
	}
	if !exists {
		return nil, domain.ErrTokenDoesNotExist
	}

	key := input.Key()
	record, err := tx.GetTokenRecord(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get token record: %w", err)
	}
	if record == nil {
		return nil, domain.ErrTokenNotInfused
	}

	approved, err := nfts.IsApprovedOrOwner(ctx, input.Collection, input.TokenID, caller)
	if errors.Is(err, nft.ErrTokenNotFound) {
		return nil, domain.ErrTokenDoesNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check token approval: %w", err)
	}
	if !approved {
		return nil, domain.ErrNotOwnerOrApproved
	}

	claimable := vesting.Claimable(rate, record.Balance, record.LastClaimAt, now.Unix())
	if claimable.Sign() == 0 {
		return nil, domain.ErrNothingClaimable
	}

	if input.Amount == nil || input.Amount.Sign() <= 0 {
		return nil, domain.ErrClaimBelowMin
	}
	grant := vesting.Grant(input.Amount, claimable)
	if e.config.FloorPolicy.BelowFloor(grant, input.Amount, record.Balance, realm.Config.Constraints.MinClaimAmount) {
		return nil, domain.ErrClaimBelowMin
	}

	next := record.Clone()
	next.LastClaimAt = vesting.Advance(record.LastClaimAt, grant, rate)
	next.Balance.Sub(next.Balance, grant)
	if err := tx.SaveTokenRecord(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save token record: %w", err)
	}

	m.transfer(ledger.Transfer{
		Token:  realm.Config.Token,
		From:   e.config.Escrow,
		To:     caller,
		Amount: new(big.Int).Set(grant),
	})
	m.emit(domain.NewClaimedEvent(key, grant, now))
	return grant, nil
}
