// Package ledger moves fungible tokens between depositors, the escrow and claimants.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInsufficientBalance is returned when the sender holds less than the amount
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInsufficientAllowance is returned when a pull exceeds the allowance granted to the receiver
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	// ErrInvalidTransfer is returned for malformed transfers
	ErrInvalidTransfer = errors.New("invalid transfer")
)

// Transfer moves Amount of Token from From to To.
// A pull transfer is a transferFrom executed by To and consumes the allowance From granted to To.
type Transfer struct {
	Token  common.Address
	From   common.Address
	To     common.Address
	Amount *big.Int
	Pull   bool
}

// Validate rejects transfers that no ledger can apply
func (t Transfer) Validate() error {
	if t.Amount == nil || t.Amount.Sign() < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidTransfer)
	}
	if t.From == (common.Address{}) || t.To == (common.Address{}) {
		return fmt.Errorf("%w: zero address", ErrInvalidTransfer)
	}
	return nil
}

// SettleError reports the transfer that stopped a settlement
type SettleError struct {
	Index int
	Err   error
}

func (e *SettleError) Error() string {
	return fmt.Sprintf("transfer %d: %v", e.Index, e.Err)
}

func (e *SettleError) Unwrap() error {
	return e.Err
}

// Refused checks if err is a ledger refusal rather than an infrastructure failure
func Refused(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInsufficientAllowance) ||
		errors.Is(err, ErrInvalidTransfer)
}

// Ledger is the fungible token ledger collaborator
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Settle applies the transfers in order. Either all of them apply or none does.
	Settle(ctx context.Context, transfers []Transfer) error
	// BalanceOf returns the balance of an account
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
}

// Funding is implemented by ledgers that can credit accounts and record allowances directly.
// Used by operators of self hosted ledgers and by tests.
type Funding interface {
	Ledger
	// Mint credits amount to an account
	Mint(ctx context.Context, token, account common.Address, amount *big.Int) error
	// Approve sets the allowance of spender over owner's balance
	Approve(ctx context.Context, token, owner, spender common.Address, amount *big.Int) error
	// Allowance returns the allowance of spender over owner's balance
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
}
