package schema

import "time"

// Realm represents the realms table - one row per tenant with its immutable streaming configuration
type Realm struct {
	// ID is the sequential realm id, starting at 1 and never reused
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name of the realm
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the free form description of the realm
	Description string `gorm:"column:description;not null;type:text;default:''"`
	// Token is the address of the fungible token streamed by the realm
	Token string `gorm:"column:token;not null;type:varchar(42)"`
	// DailyRate is the amount unlocked per token id per day (stored as string for uint256)
	DailyRate string `gorm:"column:daily_rate;not null;type:numeric(78,0)"`
	// MinInfusionAmount is the smallest accepted infusion
	MinInfusionAmount string `gorm:"column:min_infusion_amount;not null;type:numeric(78,0)"`
	// MaxInfusionAmount is the largest accepted infusion
	MaxInfusionAmount string `gorm:"column:max_infusion_amount;not null;type:numeric(78,0)"`
	// MaxTokenBalance caps the locked balance of a single token id
	MaxTokenBalance string `gorm:"column:max_token_balance;not null;type:numeric(78,0)"`
	// MinClaimAmount is the floor of a partial claim
	MinClaimAmount      string    `gorm:"column:min_claim_amount;not null;type:numeric(78,0)"`
	RequireNftIsOwned   bool      `gorm:"column:require_nft_is_owned;not null;default:false"`
	AllowMultiInfuse    bool      `gorm:"column:allow_multi_infuse;not null;default:false"`
	AllowPublicInfusion bool      `gorm:"column:allow_public_infusion;not null;default:false"`
	AllowAllCollections bool      `gorm:"column:allow_all_collections;not null;default:false"`
	CreatedAt           time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Realm model
func (Realm) TableName() string {
	return "realms"
}
