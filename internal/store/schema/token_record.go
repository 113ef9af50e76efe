package schema

import "time"

// TokenRecord represents the token_records table - locked balance and vesting clock of an NFT inside a realm
type TokenRecord struct {
	// RealmID references the realm
	RealmID uint64 `gorm:"column:realm_id;primaryKey"`
	// Collection is the NFT contract address
	Collection string `gorm:"column:collection;primaryKey;type:varchar(42)"`
	// TokenID is the NFT token id (stored as string for uint256)
	TokenID string `gorm:"column:token_id;primaryKey;type:numeric(78,0)"`
	// Balance is the locked amount still to be claimed
	Balance string `gorm:"column:balance;not null;type:numeric(78,0)"`
	// LastClaimAt is the virtual claim clock in unix seconds
	LastClaimAt int64     `gorm:"column:last_claim_at;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Realm Realm `gorm:"foreignKey:RealmID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the TokenRecord model
func (TokenRecord) TableName() string {
	return "token_records"
}
