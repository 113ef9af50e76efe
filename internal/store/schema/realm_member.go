package schema

import "time"

// RealmMember represents the realm_members table - membership of an address in one of the per-realm sets
type RealmMember struct {
	// RealmID references the realm
	RealmID uint64 `gorm:"column:realm_id;primaryKey"`
	// Role is the set the address belongs to (admin, infuser, collection, proxy)
	Role string `gorm:"column:role;primaryKey;type:varchar(16)"`
	// Address is the checksummed member address
	Address   string    `gorm:"column:address;primaryKey;type:varchar(42)"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Realm Realm `gorm:"foreignKey:RealmID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the RealmMember model
func (RealmMember) TableName() string {
	return "realm_members"
}
