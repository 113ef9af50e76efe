package nft

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type operatorKey struct {
	collection common.Address
	owner      common.Address
	operator   common.Address
}

// Memory is an ERC-721 style registry kept in process memory
type Memory struct {
	mu        sync.RWMutex
	owners    map[tokenRef]common.Address
	approvals map[tokenRef]common.Address
	operators map[operatorKey]bool
}

// NewMemory creates an empty registry
func NewMemory() *Memory {
	return &Memory{
		owners:    make(map[tokenRef]common.Address),
		approvals: make(map[tokenRef]common.Address),
		operators: make(map[operatorKey]bool),
	}
}

// Mint creates a token owned by owner
func (m *Memory) Mint(collection common.Address, tokenID *big.Int, owner common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := ref(collection, tokenID)
	if _, ok := m.owners[r]; ok {
		return fmt.Errorf("token %s already minted", tokenID)
	}
	m.owners[r] = owner
	return nil
}

// Transfer moves a token to a new owner and clears its approval
func (m *Memory) Transfer(collection common.Address, tokenID *big.Int, to common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := ref(collection, tokenID)
	if _, ok := m.owners[r]; !ok {
		return ErrTokenNotFound
	}
	m.owners[r] = to
	delete(m.approvals, r)
	return nil
}

// Burn destroys a token
func (m *Memory) Burn(collection common.Address, tokenID *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := ref(collection, tokenID)
	delete(m.owners, r)
	delete(m.approvals, r)
}

// Approve lets spender act on a single token
func (m *Memory) Approve(collection common.Address, tokenID *big.Int, spender common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := ref(collection, tokenID)
	if _, ok := m.owners[r]; !ok {
		return ErrTokenNotFound
	}
	m.approvals[r] = spender
	return nil
}

// SetApprovalForAll lets operator act on every token owner holds in the collection
func (m *Memory) SetApprovalForAll(collection, owner, operator common.Address, approved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := operatorKey{collection, owner, operator}
	if approved {
		m.operators[k] = true
		return
	}
	delete(m.operators, k)
}

func (m *Memory) Exists(_ context.Context, collection common.Address, tokenID *big.Int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.owners[ref(collection, tokenID)]
	return ok, nil
}

func (m *Memory) OwnerOf(_ context.Context, collection common.Address, tokenID *big.Int) (common.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.owners[ref(collection, tokenID)]
	if !ok {
		return common.Address{}, ErrTokenNotFound
	}
	return owner, nil
}

func (m *Memory) IsApprovedOrOwner(_ context.Context, collection common.Address, tokenID *big.Int, spender common.Address) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r := ref(collection, tokenID)
	owner, ok := m.owners[r]
	if !ok {
		return false, ErrTokenNotFound
	}
	if owner == spender {
		return true, nil
	}
	if approved, ok := m.approvals[r]; ok && approved == spender {
		return true, nil
	}
	return m.operators[operatorKey{collection, owner, spender}], nil
}
