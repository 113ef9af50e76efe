// Package engine implements the realm registry, the infusion and claim engines
// and their batch variants on top of the store, ledger and NFT registry.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/access"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/ledger"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/nft"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/vesting"
)

// Engine is the interface for the infusion engine
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// CreateRealm validates and registers a new realm, returning its id
	CreateRealm(ctx context.Context, caller common.Address, input domain.CreateRealmInput, now time.Time) (uint64, error)
	// ModifyRealm applies membership deltas to a realm. Only admins may call it.
	ModifyRealm(ctx context.Context, caller common.Address, input domain.ModifyRealmInput, now time.Time) error
	// AllowInfusionProxy adds an address to the infusion proxies of a realm
	AllowInfusionProxy(ctx context.Context, caller common.Address, realmID uint64, proxy common.Address, now time.Time) error
	// DenyInfusionProxy removes an address from the infusion proxies of a realm
	DenyInfusionProxy(ctx context.Context, caller common.Address, realmID uint64, proxy common.Address, now time.Time) error

	// Infuse locks tokens against an NFT and returns the effective amount
	Infuse(ctx context.Context, caller common.Address, input domain.InfuseInput, now time.Time) (*big.Int, error)
	// BatchInfuse applies infusions in order, all or nothing
	BatchInfuse(ctx context.Context, caller common.Address, inputs []domain.InfuseInput, now time.Time) ([]*big.Int, error)
	// Claim withdraws vested tokens of an NFT to the caller and returns the granted amount
	Claim(ctx context.Context, caller common.Address, input domain.ClaimInput, now time.Time) (*big.Int, error)
	// BatchClaim applies claims in order, all or nothing
	BatchClaim(ctx context.Context, caller common.Address, inputs []domain.ClaimInput, now time.Time) ([]*big.Int, error)

	// RealmConfig returns a realm, ErrInvalidRealm when it does not exist
	RealmConfig(ctx context.Context, realmID uint64) (*domain.Realm, error)
	// IsAdmin checks if an address administers a realm
	IsAdmin(ctx context.Context, realmID uint64, address common.Address) (bool, error)
	// IsInfuser checks if an address is in the infuser set of a realm
	IsInfuser(ctx context.Context, realmID uint64, address common.Address) (bool, error)
	// IsCollection checks if a collection is in the collection set of a realm
	IsCollection(ctx context.Context, realmID uint64, address common.Address) (bool, error)
	// IsInfusionProxy checks if an address may infuse on behalf of others in a realm
	IsInfusionProxy(ctx context.Context, realmID uint64, address common.Address) (bool, error)
	// Members lists one of the membership sets of a realm
	Members(ctx context.Context, realmID uint64, role domain.Role) ([]common.Address, error)
	// TokenData returns the vesting state of a token at now
	TokenData(ctx context.Context, key domain.TokenKey, now time.Time) (*TokenData, error)
}

// Config holds the deployment policy of the engine
type Config struct {
	// Escrow is the account holding every infused balance
	Escrow common.Address
	// ProxyPolicy decides who may manage infusion proxies
	ProxyPolicy access.ProxyPolicy
	// FloorPolicy decides which claims are exempt from the minimum claim amount
	FloorPolicy vesting.FloorPolicy
	// PrefetchConcurrency bounds the NFT registry lookups made ahead of a batch
	PrefetchConcurrency int
}

// TokenData is the state of a token record seen at a point in time.
// A token that was never infused reports zero values and Infused false.
type TokenData struct {
	Key           domain.TokenKey
	Infused       bool
	Balance       *big.Int
	LastClaimAt   int64
	Claimable     *big.Int
	FullyVestedAt int64
}

// ItemError reports the batch item that aborted a batch
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

type engine struct {
	mu     sync.Mutex
	store  store.Store
	ledger ledger.Ledger
	nfts   nft.Registry
	config Config
}

// New creates a new engine
func New(config Config, st store.Store, l ledger.Ledger, nfts nft.Registry) (Engine, error) {
	if domain.IsZeroAddress(config.Escrow) {
		return nil, fmt.Errorf("escrow address is required")
	}
	if config.ProxyPolicy == "" {
		config.ProxyPolicy = access.ProxyPolicyOpen
	}
	if !config.ProxyPolicy.Valid() {
		return nil, fmt.Errorf("unknown proxy policy: %s", config.ProxyPolicy)
	}
	if config.FloorPolicy == "" {
		config.FloorPolicy = vesting.FloorPolicyDrain
	}
	if !config.FloorPolicy.Valid() {
		return nil, fmt.Errorf("unknown claim floor policy: %s", config.FloorPolicy)
	}

	return &engine{
		store:  st,
		ledger: l,
		nfts:   nfts,
		config: config,
	}, nil
}

// mutation collects the side effects of a mutating call. Events are written to
// the outbox and transfers settled only after every item has been validated.
type mutation struct {
	events    []domain.Event
	transfers []ledger.Transfer
	// items maps each transfer to the batch item that queued it
	items []int
	item  int
}

func (m *mutation) emit(events ...domain.Event) {
	m.events = append(m.events, events...)
}

func (m *mutation) transfer(t ledger.Transfer) {
	m.transfers = append(m.transfers, t)
	m.items = append(m.items, m.item)
}

// mutate runs fn under the engine lock inside one store transaction, then
// appends the collected events and settles the collected transfers in the
// same transaction. Any failure leaves no state behind.
func (e *engine) mutate(ctx context.Context, batch bool, fn func(ctx context.Context, tx store.Tx, m *mutation) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		m := &mutation{}
		if err := fn(ctx, tx, m); err != nil {
			return err
		}

		if len(m.events) > 0 {
			if err := tx.AppendEvents(ctx, m.events); err != nil {
				return fmt.Errorf("failed to append events: %w", err)
			}
		}

		if len(m.transfers) == 0 {
			return nil
		}
		if err := e.ledger.Settle(ctx, m.transfers); err != nil {
			if !ledger.Refused(err) {
				return fmt.Errorf("failed to settle transfers: %w", err)
			}
			refused := domain.TransferError(err)
			var settleErr *ledger.SettleError
			if batch && errors.As(err, &settleErr) && settleErr.Index >= 0 && settleErr.Index < len(m.items) {
				return &ItemError{Index: m.items[settleErr.Index], Err: refused}
			}
			return refused
		}
		return nil
	})
}

// policy loads a realm and builds its access policy. A missing realm is ErrInvalidRealm.
func (e *engine) policy(ctx context.Context, r store.Reader, realmID uint64) (*access.Policy, error) {
	realm, err := r.GetRealm(ctx, realmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get realm: %w", err)
	}
	if realm == nil {
		return nil, domain.ErrInvalidRealm
	}
	return access.NewPolicy(realm, r, e.config.ProxyPolicy), nil
}

// existingRealms reports which of the realms named by ids exist.
// Realms are never deleted, so the answer stays valid once the engine lock is taken.
func (e *engine) existingRealms(ctx context.Context, ids []uint64) (map[uint64]bool, error) {
	exists := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if _, ok := exists[id]; ok {
			continue
		}
		realm, err := e.store.GetRealm(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get realm: %w", err)
		}
		exists[id] = realm != nil
	}
	return exists, nil
}

// logRejected logs a rejected call at debug and infrastructure failures at error
func logRejected(ctx context.Context, op string, err error) {
	if domain.KindOf(err) != "" {
		logger.DebugCtx(ctx, "Operation rejected", zap.String("operation", op), zap.Error(err))
		return
	}
	logger.ErrorCtx(ctx, fmt.Errorf("%s failed: %w", op, err))
}
