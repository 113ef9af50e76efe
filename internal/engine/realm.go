package engine

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/access"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/store"
	"github.com/feral-file/ff-infusion/internal/vesting"
)

// validateRealmConfig checks the realm configuration rules in order and
// returns the first violation
func validateRealmConfig(config domain.RealmConfig) error {
	c := config.Constraints
	if domain.IsZeroAddress(config.Token) {
		return domain.ErrInvalidTokenAddress
	}
	if c.MaxInfusionAmount == nil {
		return domain.ErrInvalidMaxAmount
	}
	// a minimum above the maximum is reported before a zero maximum
	if c.MinInfusionAmount == nil || c.MinInfusionAmount.Sign() < 0 || c.MinInfusionAmount.Cmp(c.MaxInfusionAmount) > 0 {
		return domain.ErrInvalidMinMaxAmount
	}
	if c.MaxInfusionAmount.Sign() <= 0 {
		return domain.ErrInvalidMaxAmount
	}
	if c.MaxTokenBalance == nil || c.MaxTokenBalance.Sign() <= 0 {
		return domain.ErrInvalidMaxBalance
	}
	if c.MinClaimAmount == nil || c.MinClaimAmount.Sign() < 0 || c.MinClaimAmount.Cmp(c.MaxTokenBalance) > 0 {
		return domain.ErrInvalidMinClaimAmount
	}
	if config.DailyRate == nil || config.DailyRate.Sign() <= 0 {
		return domain.ErrInvalidDailyRate
	}
	return nil
}

// normalizeConfig fills unset minimums with zero so that omitted lower bounds mean "no bound"
func normalizeConfig(config domain.RealmConfig) domain.RealmConfig {
	if config.Constraints.MinInfusionAmount == nil {
		config.Constraints.MinInfusionAmount = new(big.Int)
	}
	if config.Constraints.MinClaimAmount == nil {
		config.Constraints.MinClaimAmount = new(big.Int)
	}
	return config
}

func (e *engine) CreateRealm(ctx context.Context, caller common.Address, input domain.CreateRealmInput, now time.Time) (uint64, error) {
	config := normalizeConfig(input.Config)
	if err := validateRealmConfig(config); err != nil {
		logRejected(ctx, "createRealm", err)
		return 0, err
	}
	deltas := access.InitialDeltas(input)
	for _, d := range deltas {
		if err := d.Validate(); err != nil {
			logRejected(ctx, "createRealm", err)
			return 0, err
		}
	}

	realm := &domain.Realm{
		Name:        input.Name,
		Description: input.Description,
		Config:      config,
		CreatedAt:   now.UTC(),
	}

	var realmID uint64
	err := e.mutate(ctx, false, func(ctx context.Context, tx store.Tx, m *mutation) error {
		id, err := tx.CreateRealm(ctx, realm)
		if err != nil {
			return fmt.Errorf("failed to create realm: %w", err)
		}
		realm.ID = id

		var added []domain.Event
		for _, d := range deltas {
			for _, address := range access.Dedupe(d.Add) {
				changed, err := tx.AddMember(ctx, id, d.Role, address)
				if err != nil {
					return fmt.Errorf("failed to add %s: %w", d.Role, err)
				}
				if changed {
					added = append(added, domain.NewMembershipEvent(id, d.Role, address, true, now))
				}
			}
		}

		m.emit(domain.NewRealmCreatedEvent(realm, now))
		m.emit(added...)
		realmID = id
		return nil
	})
	if err != nil {
		logRejected(ctx, "createRealm", err)
		return 0, err
	}

	logger.InfoCtx(ctx, "Realm created",
		zap.Uint64("realmID", realmID),
		zap.String("name", input.Name),
		zap.String("caller", caller.Hex()),
	)
	return realmID, nil
}

func (e *engine) ModifyRealm(ctx context.Context, caller common.Address, input domain.ModifyRealmInput, now time.Time) error {
	err := e.mutate(ctx, false, func(ctx context.Context, tx store.Tx, m *mutation) error {
		policy, err := e.policy(ctx, tx, input.RealmID)
		if err != nil {
			return err
		}
		ok, err := policy.CanAdminister(ctx, caller)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotRealmAdmin
		}

		for _, d := range access.Deltas(input) {
			if err := d.Validate(); err != nil {
				return err
			}
			events, err := applyDelta(ctx, tx, input.RealmID, d, now)
			if err != nil {
				return err
			}
			m.emit(events...)
		}
		return nil
	})
	if err != nil {
		logRejected(ctx, "modifyRealm", err)
		return err
	}

	logger.InfoCtx(ctx, "Realm modified",
		zap.Uint64("realmID", input.RealmID),
		zap.String("caller", caller.Hex()),
	)
	return nil
}

// applyDelta adds then removes the delta's addresses and returns an event per real change
func applyDelta(ctx context.Context, tx store.Tx, realmID uint64, d access.Delta, now time.Time) ([]domain.Event, error) {
	var events []domain.Event
	for _, address := range access.Dedupe(d.Add) {
		changed, err := tx.AddMember(ctx, realmID, d.Role, address)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", d.Role, err)
		}
		if changed {
			events = append(events, domain.NewMembershipEvent(realmID, d.Role, address, true, now))
		}
	}
	for _, address := range access.Dedupe(d.Remove) {
		changed, err := tx.RemoveMember(ctx, realmID, d.Role, address)
		if err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", d.Role, err)
		}
		if changed {
			events = append(events, domain.NewMembershipEvent(realmID, d.Role, address, false, now))
		}
	}
	return events, nil
}

func (e *engine) AllowInfusionProxy(ctx context.Context, caller common.Address, realmID uint64, proxy common.Address, now time.Time) error {
	return e.manageProxy(ctx, caller, realmID, access.Delta{Role: domain.RoleProxy, Add: []common.Address{proxy}}, now)
}

func (e *engine) DenyInfusionProxy(ctx context.Context, caller common.Address, realmID uint64, proxy common.Address, now time.Time) error {
	return e.manageProxy(ctx, caller, realmID, access.Delta{Role: domain.RoleProxy, Remove: []common.Address{proxy}}, now)
}

func (e *engine) manageProxy(ctx context.Context, caller common.Address, realmID uint64, d access.Delta, now time.Time) error {
	err := e.mutate(ctx, false, func(ctx context.Context, tx store.Tx, m *mutation) error {
		policy, err := e.policy(ctx, tx, realmID)
		if err != nil {
			return err
		}
		ok, err := policy.CanManageProxies(ctx, caller)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotRealmAdmin
		}
		if err := d.Validate(); err != nil {
			return err
		}
		events, err := applyDelta(ctx, tx, realmID, d, now)
		if err != nil {
			return err
		}
		m.emit(events...)
		return nil
	})
	if err != nil {
		logRejected(ctx, "manageProxy", err)
		return err
	}

	logger.InfoCtx(ctx, "Infusion proxies updated",
		zap.Uint64("realmID", realmID),
		zap.Int("added", len(d.Add)),
		zap.Int("removed", len(d.Remove)),
	)
	return nil
}

func (e *engine) RealmConfig(ctx context.Context, realmID uint64) (*domain.Realm, error) {
	realm, err := e.store.GetRealm(ctx, realmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get realm: %w", err)
	}
	if realm == nil {
		return nil, domain.ErrInvalidRealm
	}
	return realm, nil
}

func (e *engine) IsAdmin(ctx context.Context, realmID uint64, address common.Address) (bool, error) {
	return e.isMember(ctx, realmID, domain.RoleAdmin, address)
}

func (e *engine) IsInfuser(ctx context.Context, realmID uint64, address common.Address) (bool, error) {
	return e.isMember(ctx, realmID, domain.RoleInfuser, address)
}

func (e *engine) IsCollection(ctx context.Context, realmID uint64, address common.Address) (bool, error) {
	return e.isMember(ctx, realmID, domain.RoleCollection, address)
}

func (e *engine) IsInfusionProxy(ctx context.Context, realmID uint64, address common.Address) (bool, error) {
	return e.isMember(ctx, realmID, domain.RoleProxy, address)
}

// isMember answers false for a realm that does not exist
func (e *engine) isMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error) {
	ok, err := e.store.IsMember(ctx, realmID, role, address)
	if err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", role, err)
	}
	return ok, nil
}

func (e *engine) Members(ctx context.Context, realmID uint64, role domain.Role) ([]common.Address, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role: %s", role)
	}
	if _, err := e.RealmConfig(ctx, realmID); err != nil {
		return nil, err
	}
	members, err := e.store.ListMembers(ctx, realmID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s members: %w", role, err)
	}
	return members, nil
}

func (e *engine) TokenData(ctx context.Context, key domain.TokenKey, now time.Time) (*TokenData, error) {
	realm, err := e.RealmConfig(ctx, key.RealmID)
	if err != nil {
		return nil, err
	}
	record, err := e.store.GetTokenRecord(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get token record: %w", err)
	}
	if record == nil {
		return &TokenData{
			Key:       key,
			Balance:   new(big.Int),
			Claimable: new(big.Int),
		}, nil
	}

	quote := vesting.QuoteRecord(record, realm.Config.DailyRate, now.Unix())
	return &TokenData{
		Key:           key,
		Infused:       true,
		Balance:       quote.Balance,
		LastClaimAt:   quote.LastClaimAt,
		Claimable:     quote.Claimable,
		FullyVestedAt: quote.FullyVestedAt,
	}, nil
}
