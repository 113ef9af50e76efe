package ledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type balanceKey struct {
	token   common.Address
	account common.Address
}

type allowanceKey struct {
	token   common.Address
	owner   common.Address
	spender common.Address
}

// Memory is an ERC-20 style ledger kept in process memory
type Memory struct {
	mu         sync.Mutex
	balances   map[balanceKey]*big.Int
	allowances map[allowanceKey]*big.Int
}

// NewMemory creates an empty in-memory ledger
func NewMemory() *Memory {
	return &Memory{
		balances:   make(map[balanceKey]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
	}
}

// Settle applies the transfers in order, restoring every touched entry when one fails
func (m *Memory) Settle(ctx context.Context, transfers []Transfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	balances := make(map[balanceKey]*big.Int)
	allowances := make(map[allowanceKey]*big.Int)
	balance := func(k balanceKey) *big.Int {
		if v, ok := balances[k]; ok {
			return v
		}
		v := new(big.Int)
		if cur, ok := m.balances[k]; ok {
			v.Set(cur)
		}
		balances[k] = v
		return v
	}
	allowance := func(k allowanceKey) *big.Int {
		if v, ok := allowances[k]; ok {
			return v
		}
		v := new(big.Int)
		if cur, ok := m.allowances[k]; ok {
			v.Set(cur)
		}
		allowances[k] = v
		return v
	}

	for i, t := range transfers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return &SettleError{Index: i, Err: err}
		}

		from := balance(balanceKey{t.Token, t.From})
		if from.Cmp(t.Amount) < 0 {
			return &SettleError{Index: i, Err: ErrInsufficientBalance}
		}
		if t.Pull {
			allowed := allowance(allowanceKey{t.Token, t.From, t.To})
			if allowed.Cmp(t.Amount) < 0 {
				return &SettleError{Index: i, Err: ErrInsufficientAllowance}
			}
			allowed.Sub(allowed, t.Amount)
		}
		from.Sub(from, t.Amount)
		to := balance(balanceKey{t.Token, t.To})
		to.Add(to, t.Amount)
	}

	for k, v := range balances {
		m.balances[k] = v
	}
	for k, v := range allowances {
		m.allowances[k] = v
	}
	return nil
}

// BalanceOf returns the balance of an account
func (m *Memory) BalanceOf(_ context.Context, token, account common.Address) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.balances[balanceKey{token, account}]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}

// Mint credits amount to an account
func (m *Memory) Mint(_ context.Context, token, account common.Address, amount *big.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := balanceKey{token, account}
	v, ok := m.balances[k]
	if !ok {
		v = new(big.Int)
		m.balances[k] = v
	}
	v.Add(v, amount)
	return nil
}

// Approve sets the allowance of spender over owner's balance
func (m *Memory) Approve(_ context.Context, token, owner, spender common.Address, amount *big.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allowances[allowanceKey{token, owner, spender}] = new(big.Int).Set(amount)
	return nil
}

// Allowance returns the allowance of spender over owner's balance
func (m *Memory) Allowance(_ context.Context, token, owner, spender common.Address) (*big.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.allowances[allowanceKey{token, owner, spender}]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}
