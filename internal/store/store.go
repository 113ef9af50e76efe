package store

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/domain"
)

// Reader defines the read operations shared by a store and its transactions
type Reader interface {
	// GetRealm retrieves a realm by id, nil when it does not exist
	GetRealm(ctx context.Context, realmID uint64) (*domain.Realm, error)
	// IsMember checks if an address belongs to one of the sets of a realm
	IsMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error)
	// GetTokenRecord retrieves the record of a token, nil when it was never infused
	GetTokenRecord(ctx context.Context, key domain.TokenKey) (*domain.TokenRecord, error)
	// ListMembers lists the addresses of a realm set in insertion order
	ListMembers(ctx context.Context, realmID uint64, role domain.Role) ([]common.Address, error)
}

// Tx defines the operations available inside a store transaction
type Tx interface {
	Reader
	// CreateRealm inserts a realm and returns its sequential id
	CreateRealm(ctx context.Context, realm *domain.Realm) (uint64, error)
	// AddMember adds an address to a realm set, reports whether the set changed
	AddMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error)
	// RemoveMember removes an address from a realm set, reports whether the set changed
	RemoveMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error)
	// SaveTokenRecord inserts or updates a token record
	SaveTokenRecord(ctx context.Context, record *domain.TokenRecord) error
	// AppendEvents writes events to the outbox, assigning ids to events without one
	AppendEvents(ctx context.Context, events []domain.Event) error
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,Tx=MockTx,Reader=MockReader
type Store interface {
	Reader
	// WithTx runs fn inside a serialised transaction. Nothing fn wrote is kept when it returns an error.
	// The context passed to fn carries the transaction for collaborators sharing the database.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// PendingEvents returns up to limit unpublished outbox events in commit order
	PendingEvents(ctx context.Context, limit int) ([]domain.Event, error)
	// MarkEventsPublished marks outbox events as published
	MarkEventsPublished(ctx context.Context, eventIDs []string, at time.Time) error
}
