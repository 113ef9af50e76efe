package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType represents the type of a ledger event
type EventType string

const (
	EventTypeRealmCreated         EventType = "realm_created"
	EventTypeAdminAdded           EventType = "admin_added"
	EventTypeAdminRemoved         EventType = "admin_removed"
	EventTypeInfuserAdded         EventType = "infuser_added"
	EventTypeInfuserRemoved       EventType = "infuser_removed"
	EventTypeCollectionAdded      EventType = "collection_added"
	EventTypeCollectionRemoved    EventType = "collection_removed"
	EventTypeInfusionProxyAdded   EventType = "infusion_proxy_added"
	EventTypeInfusionProxyRemoved EventType = "infusion_proxy_removed"
	EventTypeInfused              EventType = "infused"
	EventTypeClaimed              EventType = "claimed"
)

// Event is a committed state change, written to the outbox in the same
// transaction as the change itself and relayed to the message broker later
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	RealmID     uint64    `json:"realm_id"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Account     string    `json:"account,omitempty"` // member or proxy address for membership events
	Collection  string    `json:"collection,omitempty"`
	TokenID     string    `json:"token_id,omitempty"`
	Infuser     string    `json:"infuser,omitempty"`
	Amount      string    `json:"amount,omitempty"`
	Comment     string    `json:"comment,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MembershipEventType returns the event emitted when a member of the role set is added or removed
func MembershipEventType(role Role, added bool) EventType {
	switch role {
	case RoleAdmin:
		if added {
			return EventTypeAdminAdded
		}
		return EventTypeAdminRemoved
	case RoleInfuser:
		if added {
			return EventTypeInfuserAdded
		}
		return EventTypeInfuserRemoved
	case RoleCollection:
		if added {
			return EventTypeCollectionAdded
		}
		return EventTypeCollectionRemoved
	case RoleProxy:
		if added {
			return EventTypeInfusionProxyAdded
		}
		return EventTypeInfusionProxyRemoved
	}
	return ""
}

// NewRealmCreatedEvent creates a RealmCreated event
func NewRealmCreatedEvent(realm *Realm, at time.Time) Event {
	return Event{
		Type:        EventTypeRealmCreated,
		RealmID:     realm.ID,
		Name:        realm.Name,
		Description: realm.Description,
		OccurredAt:  at,
	}
}

// NewMembershipEvent creates a membership change event
func NewMembershipEvent(realmID uint64, role Role, account common.Address, added bool, at time.Time) Event {
	return Event{
		Type:       MembershipEventType(role, added),
		RealmID:    realmID,
		Account:    account.Hex(),
		OccurredAt: at,
	}
}

// NewInfusedEvent creates an Infused event carrying the effective amount
func NewInfusedEvent(input InfuseInput, amount *big.Int, at time.Time) Event {
	return Event{
		Type:       EventTypeInfused,
		RealmID:    input.RealmID,
		Collection: input.Collection.Hex(),
		TokenID:    input.TokenID.String(),
		Infuser:    input.Infuser.Hex(),
		Amount:     amount.String(),
		Comment:    input.Comment,
		OccurredAt: at,
	}
}

// NewClaimedEvent creates a Claimed event carrying the granted amount
func NewClaimedEvent(key TokenKey, amount *big.Int, at time.Time) Event {
	return Event{
		Type:       EventTypeClaimed,
		RealmID:    key.RealmID,
		Collection: key.Collection.Hex(),
		TokenID:    key.TokenID.String(),
		Amount:     amount.String(),
		OccurredAt: at,
	}
}
