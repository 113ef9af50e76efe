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
)

func (e *engine) Infuse(ctx context.Context, caller common.Address, input domain.InfuseInput, now time.Time) (*big.Int, error) {
	amounts, err := e.infuseAll(ctx, caller, []domain.InfuseInput{input}, now, false)
	if err != nil {
		logRejected(ctx, "infuse", err)
		return nil, err
	}

	logger.InfoCtx(ctx, "Token infused",
		zap.String("token", input.Key().String()),
		zap.String("infuser", input.Infuser.Hex()),
		zap.String("amount", amounts[0].String()),
	)
	return amounts[0], nil
}

func (e *engine) BatchInfuse(ctx context.Context, caller common.Address, inputs []domain.InfuseInput, now time.Time) ([]*big.Int, error) {
	if len(inputs) == 0 {
		return []*big.Int{}, nil
	}
	amounts, err := e.infuseAll(ctx, caller, inputs, now, true)
	if err != nil {
		logRejected(ctx, "batchInfuse", err)
		return nil, err
	}

	logger.InfoCtx(ctx, "Tokens infused", zap.Int("count", len(amounts)), zap.String("caller", caller.Hex()))
	return amounts, nil
}

func (e *engine) infuseAll(ctx context.Context, caller common.Address, inputs []domain.InfuseInput, now time.Time, batch bool) ([]*big.Int, error) {
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
		queries = append(queries, nft.Query{Collection: in.Collection, TokenID: in.TokenID})
	}
	snapshot, err := nft.Prefetch(ctx, e.nfts, queries, e.config.PrefetchConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to query nft registry: %w", err)
	}

	amounts := make([]*big.Int, len(inputs))
	err = e.mutate(ctx, batch, func(ctx context.Context, tx store.Tx, m *mutation) error {
		for i, in := range inputs {
			m.item = i
			amount, err := e.infuse(ctx, tx, snapshot, m, caller, in, now)
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

// infuse validates one infusion against the state of tx, records the new
// balance and queues its transfer and event. It returns the effective amount.
func (e *engine) infuse(ctx context.Context, tx store.Tx, nfts nft.Registry, m *mutation, caller common.Address, input domain.InfuseInput, now time.Time) (*big.Int, error) {
	if input.TokenID == nil {
		return nil, domain.ErrTokenDoesNotExist
	}

	policy, err := e.policy(ctx, tx, input.RealmID)
	if err != nil {
		return nil, err
	}
	realm := policy.Realm()
	constraints := realm.Config.Constraints

	eligible, err := policy.IsEligibleCollection(ctx, input.Collection)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, domain.ErrCollectionNotAllowed
	}

	if err := policy.CanDeposit(ctx, caller, input.Infuser); err != nil {
		return nil, err
	}

	exists, err := nfts.Exists(ctx, input.Collection, input.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token existence: %w", err)
	}
	if !exists {
		return nil, domain.ErrTokenDoesNotExist
	}

	if constraints.RequireNftIsOwned {
		owner, err := nfts.OwnerOf(ctx, input.Collection, input.TokenID)
		if errors.Is(err, nft.ErrTokenNotFound) {
			return nil, domain.ErrTokenDoesNotExist
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get token owner: %w", err)
		}
		if owner != input.Infuser {
			return nil, domain.ErrNftNotOwned
		}
	}

	key := input.Key()
	record, err := tx.GetTokenRecord(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get token record: %w", err)
	}
	balance := new(big.Int)
	if record != nil {
		balance.Set(record.Balance)
	}

	if balance.Sign() > 0 && !constraints.AllowMultiInfuse {
		return nil, domain.ErrMultiInfuse
	}

	if input.Amount == nil || input.Amount.Sign() <= 0 || input.Amount.Cmp(constraints.MinInfusionAmount) < 0 {
		return nil, domain.ErrAmountBelowMin
	}
	if input.Amount.Cmp(constraints.MaxInfusionAmount) > 0 {
		return nil, domain.ErrAmountAboveMax
	}

	effective := new(big.Int).Sub(constraints.MaxTokenBalance, balance)
	if input.Amount.Cmp(effective) < 0 {
		effective.Set(input.Amount)
	}
	if effective.Sign() <= 0 {
		return nil, domain.ErrMaxTokenBalance
	}

	next := &domain.TokenRecord{
		Key:     key,
		Balance: new(big.Int).Add(balance, effective),
	}
	if record != nil {
		next.LastClaimAt = record.LastClaimAt
	}
	// an empty token starts a new vesting window
	if balance.Sign() == 0 {
		next.LastClaimAt = now.Unix()
	}
	if err := tx.SaveTokenRecord(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save token record: %w", err)
	}

	m.transfer(ledger.Transfer{
		Token:  realm.Config.Token,
		From:   input.Infuser,
		To:     e.config.Escrow,
		Amount: new(big.Int).Set(effective),
		Pull:   true,
	})
	m.emit(domain.NewInfusedEvent(input, effective, now))
	return effective, nil
}
