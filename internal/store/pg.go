package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/store/schema"
)

// engineLockKey is the advisory lock serialising mutations across API replicas
const engineLockKey int64 = 0x66662d696e6675 // "ff-infu"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// WithTx runs fn inside a database transaction holding the engine advisory lock.
// The lock is released on commit or rollback.
func (s *pgStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", engineLockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire engine lock: %w", err)
		}
		return fn(ContextWithTx(ctx, tx), &pgTx{db: tx})
	})
}

func (s *pgStore) GetRealm(ctx context.Context, realmID uint64) (*domain.Realm, error) {
	return (&pgTx{db: s.db}).GetRealm(ctx, realmID)
}

func (s *pgStore) IsMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	return (&pgTx{db: s.db}).IsMember(ctx, realmID, role, address)
}

func (s *pgStore) GetTokenRecord(ctx context.Context, key domain.TokenKey) (*domain.TokenRecord, error) {
	return (&pgTx{db: s.db}).GetTokenRecord(ctx, key)
}

func (s *pgStore) ListMembers(ctx context.Context, realmID uint64, role domain.Role) ([]common.Address, error) {
	return (&pgTx{db: s.db}).ListMembers(ctx, realmID, role)
}

// PendingEvents returns up to limit unpublished outbox events ordered by sequence
func (s *pgStore) PendingEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	var rows []schema.OutboxEvent
	query := s.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}

	events := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		var event domain.Event
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outbox event %s: %w", row.EventID, err)
		}
		event.ID = row.EventID
		events = append(events, event)
	}
	return events, nil
}

// MarkEventsPublished marks outbox events as published
func (s *pgStore) MarkEventsPublished(ctx context.Context, eventIDs []string, at time.Time) error {
	if len(eventIDs) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.OutboxEvent{}).
		Where("event_id IN ? AND published_at IS NULL", eventIDs).
		Update("published_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to mark events published: %w", err)
	}
	return nil
}

type pgTx struct {
	db *gorm.DB
}

// GetRealm retrieves a realm by id
func (t *pgTx) GetRealm(ctx context.Context, realmID uint64) (*domain.Realm, error) {
	var row schema.Realm
	err := t.db.WithContext(ctx).Where("id = ?", realmID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get realm: %w", err)
	}
	return realmFromRow(row)
}

// IsMember checks set membership
func (t *pgTx) IsMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	var count int64
	err := t.db.WithContext(ctx).
		Model(&schema.RealmMember{}).
		Where("realm_id = ? AND role = ? AND address = ?", realmID, string(role), address.Hex()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// GetTokenRecord retrieves a token record
func (t *pgTx) GetTokenRecord(ctx context.Context, key domain.TokenKey) (*domain.TokenRecord, error) {
	var row schema.TokenRecord
	err := t.db.WithContext(ctx).
		Where("realm_id = ? AND collection = ? AND token_id = ?", key.RealmID, key.Collection.Hex(), key.TokenID.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token record: %w", err)
	}
	return tokenRecordFromRow(row)
}

// ListMembers lists the addresses of a realm set ordered by time of addition
func (t *pgTx) ListMembers(ctx context.Context, realmID uint64, role domain.Role) ([]common.Address, error) {
	var rows []schema.RealmMember
	err := t.db.WithContext(ctx).
		Where("realm_id = ? AND role = ?", realmID, string(role)).
		Order("created_at ASC, address ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	addresses := make([]common.Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, common.HexToAddress(row.Address))
	}
	return addresses, nil
}

// CreateRealm inserts a realm and returns its id
func (t *pgTx) CreateRealm(ctx context.Context, realm *domain.Realm) (uint64, error) {
	row := rowFromRealm(realm)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to create realm: %w", err)
	}
	return row.ID, nil
}

// AddMember adds an address to a set, doing nothing when it is already present
func (t *pgTx) AddMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	member := schema.RealmMember{
		RealmID: realmID,
		Role:    string(role),
		Address: address.Hex(),
	}
	result := t.db.WithContext(ctx).
		Omit("Realm", "created_at").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add member: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveMember removes an address from a set
func (t *pgTx) RemoveMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	result := t.db.WithContext(ctx).
		Where("realm_id = ? AND role = ? AND address = ?", realmID, string(role), address.Hex()).
		Delete(&schema.RealmMember{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove member: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SaveTokenRecord upserts a token record
func (t *pgTx) SaveTokenRecord(ctx context.Context, record *domain.TokenRecord) error {
	row := schema.TokenRecord{
		RealmID:     record.Key.RealmID,
		Collection:  record.Key.Collection.Hex(),
		TokenID:     record.Key.TokenID.String(),
		Balance:     record.Balance.String(),
		LastClaimAt: record.LastClaimAt,
		UpdatedAt:   time.Now().UTC(),
	}
	err := t.db.WithContext(ctx).
		Omit("Realm", "created_at").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "realm_id"}, {Name: "collection"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "last_claim_at", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save token record: %w", err)
	}
	return nil
}

// AppendEvents writes events to the outbox
func (t *pgTx) AppendEvents(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]schema.OutboxEvent, 0, len(events))
	for _, event := range assignEventIDs(events) {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		rows = append(rows, schema.OutboxEvent{
			EventID:    event.ID,
			EventType:  string(event.Type),
			RealmID:    event.RealmID,
			Payload:    payload,
			OccurredAt: event.OccurredAt,
		})
	}

	if err := t.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append events: %w", err)
	}
	return nil
}
