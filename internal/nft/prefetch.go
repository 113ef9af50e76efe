package nft

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
)

// Query names a token and, optionally, an account whose approval is needed
type Query struct {
	Collection common.Address
	TokenID    *big.Int
	// Spender is checked with IsApprovedOrOwner when set
	Spender *common.Address
}

type approvalKey struct {
	token   tokenRef
	spender common.Address
}

type ownerAnswer struct {
	owner  common.Address
	exists bool
}

// Snapshot answers registry questions from prefetched results and falls back
// to the underlying registry for anything that was not prefetched
type Snapshot struct {
	registry  Registry
	mu        sync.RWMutex
	owners    map[tokenRef]ownerAnswer
	approvals map[approvalKey]bool
}

// Prefetch resolves every query concurrently on a worker pool of the given size.
// Batches are prefetched before the engine lock is taken so that slow RPC round
// trips do not serialise behind it.
func Prefetch(ctx context.Context, registry Registry, queries []Query, concurrency int) (*Snapshot, error) {
	if concurrency <= 0 {
		concurrency = 8
	}

	s := &Snapshot{
		registry:  registry,
		owners:    make(map[tokenRef]ownerAnswer),
		approvals: make(map[approvalKey]bool),
	}
	if len(queries) == 0 {
		return s, nil
	}

	pool := pond.NewPool(concurrency, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	seenOwners := make(map[tokenRef]struct{})
	seenApprovals := make(map[approvalKey]struct{})

	for _, q := range queries {
		q := q
		r := ref(q.Collection, q.TokenID)

		if _, ok := seenOwners[r]; !ok {
			seenOwners[r] = struct{}{}
			group.SubmitErr(func() error {
				owner, err := registry.OwnerOf(ctx, q.Collection, q.TokenID)
				if err != nil && !errors.Is(err, ErrTokenNotFound) {
					return err
				}
				s.mu.Lock()
				s.owners[r] = ownerAnswer{owner: owner, exists: err == nil}
				s.mu.Unlock()
				return nil
			})
		}

		if q.Spender == nil {
			continue
		}
		k := approvalKey{token: r, spender: *q.Spender}
		if _, ok := seenApprovals[k]; ok {
			continue
		}
		seenApprovals[k] = struct{}{}
		group.SubmitErr(func() error {
			ok, err := registry.IsApprovedOrOwner(ctx, q.Collection, q.TokenID, k.spender)
			if errors.Is(err, ErrTokenNotFound) {
				ok, err = false, nil
			}
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.approvals[k] = ok
			s.mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) owner(collection common.Address, tokenID *big.Int) (ownerAnswer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.owners[ref(collection, tokenID)]
	return a, ok
}

func (s *Snapshot) Exists(ctx context.Context, collection common.Address, tokenID *big.Int) (bool, error) {
	if a, ok := s.owner(collection, tokenID); ok {
		return a.exists, nil
	}
	return s.registry.Exists(ctx, collection, tokenID)
}

func (s *Snapshot) OwnerOf(ctx context.Context, collection common.Address, tokenID *big.Int) (common.Address, error) {
	if a, ok := s.owner(collection, tokenID); ok {
		if !a.exists {
			return common.Address{}, ErrTokenNotFound
		}
		return a.owner, nil
	}
	return s.registry.OwnerOf(ctx, collection, tokenID)
}

func (s *Snapshot) IsApprovedOrOwner(ctx context.Context, collection common.Address, tokenID *big.Int, spender common.Address) (bool, error) {
	if a, ok := s.owner(collection, tokenID); ok && !a.exists {
		return false, ErrTokenNotFound
	}
	s.mu.RLock()
	approved, ok := s.approvals[approvalKey{token: ref(collection, tokenID), spender: spender}]
	s.mu.RUnlock()
	if ok {
		return approved, nil
	}
	return s.registry.IsApprovedOrOwner(ctx, collection, tokenID, spender)
}
