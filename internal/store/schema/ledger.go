package schema

import "time"

// LedgerBalance represents the ledger_balances table - fungible token balances held by the escrow ledger
type LedgerBalance struct {
	// Token is the fungible token address
	Token string `gorm:"column:token;primaryKey;type:varchar(42)"`
	// Account is the holder address
	Account string `gorm:"column:account;primaryKey;type:varchar(42)"`
	// Amount is the balance in base units
	Amount    string    `gorm:"column:amount;not null;type:numeric(78,0)"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerBalance model
func (LedgerBalance) TableName() string {
	return "ledger_balances"
}

// LedgerAllowance represents the ledger_allowances table - amounts an owner lets a spender pull
type LedgerAllowance struct {
	Token     string    `gorm:"column:token;primaryKey;type:varchar(42)"`
	Owner     string    `gorm:"column:owner;primaryKey;type:varchar(42)"`
	Spender   string    `gorm:"column:spender;primaryKey;type:varchar(42)"`
	Amount    string    `gorm:"column:amount;not null;type:numeric(78,0)"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerAllowance model
func (LedgerAllowance) TableName() string {
	return "ledger_allowances"
}
