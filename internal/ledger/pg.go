package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/store/schema"
)

// PG is an escrow ledger kept in PostgreSQL. When the context carries a store
// transaction the ledger writes join it, so ledger and engine state commit together.
type PG struct {
	db *gorm.DB
}

// NewPG creates a PostgreSQL ledger
func NewPG(db *gorm.DB) *PG {
	return &PG{db: db}
}

// Settle applies the transfers in order inside one transaction
func (l *PG) Settle(ctx context.Context, transfers []Transfer) error {
	return l.transaction(ctx, func(tx *gorm.DB) error {
		for i, t := range transfers {
			if err := t.Validate(); err != nil {
				return &SettleError{Index: i, Err: err}
			}
			if err := l.apply(tx, t); err != nil {
				return &SettleError{Index: i, Err: err}
			}
		}
		return nil
	})
}

func (l *PG) apply(tx *gorm.DB, t Transfer) error {
	from, err := lockBalance(tx, t.Token, t.From)
	if err != nil {
		return err
	}
	if from.Cmp(t.Amount) < 0 {
		return ErrInsufficientBalance
	}

	if t.Pull {
		allowed, err := lockAllowance(tx, t.Token, t.From, t.To)
		if err != nil {
			return err
		}
		if allowed.Cmp(t.Amount) < 0 {
			return ErrInsufficientAllowance
		}
		err = tx.Model(&schema.LedgerAllowance{}).
			Where("token = ? AND owner = ? AND spender = ?", t.Token.Hex(), t.From.Hex(), t.To.Hex()).
			Updates(map[string]interface{}{
				"amount":     new(big.Int).Sub(allowed, t.Amount).String(),
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update allowance: %w", err)
		}
	}

	err = tx.Model(&schema.LedgerBalance{}).
		Where("token = ? AND account = ?", t.Token.Hex(), t.From.Hex()).
		Updates(map[string]interface{}{
			"amount":     new(big.Int).Sub(from, t.Amount).String(),
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}

	return credit(tx, t.Token, t.To, t.Amount)
}

// BalanceOf returns the balance of an account
func (l *PG) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	var row schema.LedgerBalance
	err := store.DBFromContext(ctx, l.db).
		Where("token = ? AND account = ?", token.Hex(), account.Hex()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return domain.ParseAmount(row.Amount)
}

// Mint credits amount to an account
func (l *PG) Mint(ctx context.Context, token, account common.Address, amount *big.Int) error {
	return l.transaction(ctx, func(tx *gorm.DB) error {
		return credit(tx, token, account, amount)
	})
}

// Approve sets the allowance of spender over owner's balance
func (l *PG) Approve(ctx context.Context, token, owner, spender common.Address, amount *big.Int) error {
	row := schema.LedgerAllowance{
		Token:     token.Hex(),
		Owner:     owner.Hex(),
		Spender:   spender.Hex(),
		Amount:    amount.String(),
		UpdatedAt: time.Now().UTC(),
	}
	err := store.DBFromContext(ctx, l.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}, {Name: "owner"}, {Name: "spender"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to approve: %w", err)
	}
	return nil
}

// Allowance returns the allowance of spender over owner's balance
func (l *PG) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	var row schema.LedgerAllowance
	err := store.DBFromContext(ctx, l.db).
		Where("token = ? AND owner = ? AND spender = ?", token.Hex(), owner.Hex(), spender.Hex()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	return domain.ParseAmount(row.Amount)
}

// transaction runs fn in the store transaction carried by ctx, or in a new one
func (l *PG) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return store.DBFromContext(ctx, l.db).Transaction(fn)
}

func lockBalance(tx *gorm.DB, token, account common.Address) (*big.Int, error) {
	var row schema.LedgerBalance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ? AND account = ?", token.Hex(), account.Hex()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to lock balance: %w", err)
	}
	return domain.ParseAmount(row.Amount)
}

func lockAllowance(tx *gorm.DB, token, owner, spender common.Address) (*big.Int, error) {
	var row schema.LedgerAllowance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token = ? AND owner = ? AND spender = ?", token.Hex(), owner.Hex(), spender.Hex()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to lock allowance: %w", err)
	}
	return domain.ParseAmount(row.Amount)
}

func credit(tx *gorm.DB, token, account common.Address, amount *big.Int) error {
	row := schema.LedgerBalance{
		Token:     token.Hex(),
		Account:   account.Hex(),
		Amount:    amount.String(),
		UpdatedAt: time.Now().UTC(),
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}, {Name: "account"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("ledger_balances.amount + EXCLUDED.amount"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}
