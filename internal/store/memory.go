package store

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-infusion/internal/domain"
)

type memberKey struct {
	realmID uint64
	role    domain.Role
	address common.Address
}

type outboxEntry struct {
	event       domain.Event
	publishedAt *time.Time
}

// memoryState is the full state of a memory store. Transactions work on a copy.
type memoryState struct {
	lastRealmID uint64
	realms      map[uint64]*domain.Realm
	members     map[memberKey]uint64
	memberSeq   uint64
	records     map[string]*domain.TokenRecord
	outbox      []outboxEntry
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		lastRealmID: s.lastRealmID,
		realms:      make(map[uint64]*domain.Realm, len(s.realms)),
		members:     make(map[memberKey]uint64, len(s.members)),
		memberSeq:   s.memberSeq,
		records:     make(map[string]*domain.TokenRecord, len(s.records)),
		outbox:      make([]outboxEntry, len(s.outbox)),
	}
	// realms are immutable once created
	for id, r := range s.realms {
		c.realms[id] = r
	}
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, r := range s.records {
		c.records[k] = r.Clone()
	}
	copy(c.outbox, s.outbox)
	return c
}

type memoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

// NewMemoryStore creates a store keeping its state in process memory
func NewMemoryStore() Store {
	return &memoryStore{
		state: &memoryState{
			realms:  make(map[uint64]*domain.Realm),
			members: make(map[memberKey]uint64),
			records: make(map[string]*domain.TokenRecord),
		},
	}
}

// WithTx runs fn against a copy of the state and swaps it in when fn succeeds
func (s *memoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(ctx, &memoryTx{state: working}); err != nil {
		return err
	}

	s.state = working
	return nil
}

func (s *memoryStore) GetRealm(ctx context.Context, realmID uint64) (*domain.Realm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&memoryTx{state: s.state}).GetRealm(ctx, realmID)
}

func (s *memoryStore) IsMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&memoryTx{state: s.state}).IsMember(ctx, realmID, role, address)
}

func (s *memoryStore) GetTokenRecord(ctx context.Context, key domain.TokenKey) (*domain.TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&memoryTx{state: s.state}).GetTokenRecord(ctx, key)
}

func (s *memoryStore) ListMembers(ctx context.Context, realmID uint64, role domain.Role) ([]common.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return (&memoryTx{state: s.state}).ListMembers(ctx, realmID, role)
}

// PendingEvents returns up to limit unpublished events in commit order
func (s *memoryStore) PendingEvents(_ context.Context, limit int) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]domain.Event, 0)
	for _, entry := range s.state.outbox {
		if entry.publishedAt != nil {
			continue
		}
		if limit > 0 && len(events) >= limit {
			break
		}
		events = append(events, entry.event)
	}
	return events, nil
}

// MarkEventsPublished marks outbox events as published
func (s *memoryStore) MarkEventsPublished(_ context.Context, eventIDs []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		ids[id] = struct{}{}
	}
	for i := range s.state.outbox {
		if _, ok := ids[s.state.outbox[i].event.ID]; ok && s.state.outbox[i].publishedAt == nil {
			publishedAt := at
			s.state.outbox[i].publishedAt = &publishedAt
		}
	}
	return nil
}

type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) GetRealm(_ context.Context, realmID uint64) (*domain.Realm, error) {
	realm, ok := t.state.realms[realmID]
	if !ok {
		return nil, nil
	}
	cp := *realm
	cp.Config = cloneConfig(realm.Config)
	return &cp, nil
}

func (t *memoryTx) IsMember(_ context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	_, ok := t.state.members[memberKey{realmID, role, address}]
	return ok, nil
}

func (t *memoryTx) GetTokenRecord(_ context.Context, key domain.TokenKey) (*domain.TokenRecord, error) {
	record, ok := t.state.records[key.String()]
	if !ok {
		return nil, nil
	}
	return record.Clone(), nil
}

func (t *memoryTx) ListMembers(_ context.Context, realmID uint64, role domain.Role) ([]common.Address, error) {
	type member struct {
		address common.Address
		seq     uint64
	}
	members := make([]member, 0)
	for k, seq := range t.state.members {
		if k.realmID == realmID && k.role == role {
			members = append(members, member{k.address, seq})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].seq < members[j].seq })

	addresses := make([]common.Address, 0, len(members))
	for _, m := range members {
		addresses = append(addresses, m.address)
	}
	return addresses, nil
}

func (t *memoryTx) CreateRealm(_ context.Context, realm *domain.Realm) (uint64, error) {
	t.state.lastRealmID++
	stored := *realm
	stored.ID = t.state.lastRealmID
	stored.Config = cloneConfig(realm.Config)
	t.state.realms[stored.ID] = &stored
	return stored.ID, nil
}

func (t *memoryTx) AddMember(_ context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	key := memberKey{realmID, role, address}
	if _, ok := t.state.members[key]; ok {
		return false, nil
	}
	t.state.memberSeq++
	t.state.members[key] = t.state.memberSeq
	return true, nil
}

func (t *memoryTx) RemoveMember(_ context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	key := memberKey{realmID, role, address}
	if _, ok := t.state.members[key]; !ok {
		return false, nil
	}
	delete(t.state.members, key)
	return true, nil
}

func (t *memoryTx) SaveTokenRecord(_ context.Context, record *domain.TokenRecord) error {
	t.state.records[record.Key.String()] = record.Clone()
	return nil
}

func (t *memoryTx) AppendEvents(_ context.Context, events []domain.Event) error {
	for _, event := range assignEventIDs(events) {
		t.state.outbox = append(t.state.outbox, outboxEntry{event: event})
	}
	return nil
}

// assignEventIDs gives every event without an id a ULID derived from its time
func assignEventIDs(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, event := range events {
		if event.ID == "" {
			event.ID = ulid.MustNewDefault(event.OccurredAt).String()
		}
		out[i] = event
	}
	return out
}

func cloneConfig(c domain.RealmConfig) domain.RealmConfig {
	cp := func(v *big.Int) *big.Int {
		if v == nil {
			return new(big.Int)
		}
		return new(big.Int).Set(v)
	}
	return domain.RealmConfig{
		Token:     c.Token,
		DailyRate: cp(c.DailyRate),
		Constraints: domain.RealmConstraints{
			MinInfusionAmount:   cp(c.Constraints.MinInfusionAmount),
			MaxInfusionAmount:   cp(c.Constraints.MaxInfusionAmount),
			MaxTokenBalance:     cp(c.Constraints.MaxTokenBalance),
			MinClaimAmount:      cp(c.Constraints.MinClaimAmount),
			RequireNftIsOwned:   c.Constraints.RequireNftIsOwned,
			AllowMultiInfuse:    c.Constraints.AllowMultiInfuse,
			AllowPublicInfusion: c.Constraints.AllowPublicInfusion,
			AllowAllCollections: c.Constraints.AllowAllCollections,
		},
	}
}
