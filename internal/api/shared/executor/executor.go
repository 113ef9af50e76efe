package executor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-infusion/internal/api/shared/errors"
	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
)

// Executor turns API requests into engine calls stamped with the server clock
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// CreateRealm creates a realm and returns its id
	CreateRealm(ctx context.Context, caller common.Address, req dto.CreateRealmRequest) (*dto.CreateRealmResponse, error)

	// ModifyRealm applies membership changes to a realm
	ModifyRealm(ctx context.Context, caller common.Address, realmID uint64, req dto.ModifyRealmRequest) error

	// SetInfusionProxy allows or denies an infusion proxy
	SetInfusionProxy(ctx context.Context, caller common.Address, realmID uint64, proxy common.Address, allowed bool) error

	// GetRealm returns the realm configuration
	GetRealm(ctx context.Context, realmID uint64) (*dto.RealmResponse, error)

	// GetMembership answers whether address belongs to the role set of a realm
	GetMembership(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (*dto.MembershipResponse, error)

	// ListMembers lists the role set of a realm
	ListMembers(ctx context.Context, realmID uint64, role domain.Role) (*dto.MembersResponse, error)

	// Infuse performs a single infusion
	Infuse(ctx context.Context, caller common.Address, req dto.InfuseRequest) (*dto.AmountResponse, error)

	// BatchInfuse performs infusions atomically
	BatchInfuse(ctx context.Context, caller common.Address, req dto.BatchInfuseRequest) (*dto.BatchAmountsResponse, error)

	// Claim performs a single claim
	Claim(ctx context.Context, caller common.Address, req dto.ClaimRequest) (*dto.AmountResponse, error)

	// BatchClaim performs claims atomically
	BatchClaim(ctx context.Context, caller common.Address, req dto.BatchClaimRequest) (*dto.BatchAmountsResponse, error)

	// GetTokenData returns the token state with its claimable amount now
	GetTokenData(ctx context.Context, key domain.TokenKey) (*dto.TokenDataResponse, error)
}

type executor struct {
	engine engine.Engine
	clock  adapter.Clock
}

func NewExecutor(e engine.Engine, clock adapter.Clock) Executor {
	return &executor{engine: e, clock: clock}
}

func (e *executor) CreateRealm(ctx context.Context, caller common.Address, req dto.CreateRealmRequest) (*dto.CreateRealmResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	input, err := req.ToInput()
	if err != nil {
		return nil, err
	}

	realmID, err := e.engine.CreateRealm(ctx, caller, input, e.clock.Now())
	if err != nil {
		return nil, err
	}
	return &dto.CreateRealmResponse{RealmID: realmID}, nil
}

func (e *executor) ModifyRealm(ctx context.Context, caller common.Address, realmID uint64, req dto.ModifyRealmRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	input, err := req.ToInput(realmID)
	if err != nil {
		return err
	}
	return e.engine.ModifyRealm(ctx, caller, input, e.clock.Now())
}

func (e *executor) SetInfusionProxy(ctx context.Context, caller common.Address, realmID uint64, proxy common.Address, allowed bool) error {
	if allowed {
		return e.engine.AllowInfusionProxy(ctx, caller, realmID, proxy, e.clock.Now())
	}
	return e.engine.DenyInfusionProxy(ctx, caller, realmID, proxy, e.clock.Now())
}

func (e *executor) GetRealm(ctx context.Context, realmID uint64) (*dto.RealmResponse, error) {
	realm, err := e.engine.RealmConfig(ctx, realmID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRealmResponse(realm)
	return &resp, nil
}

func (e *executor) GetMembership(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (*dto.MembershipResponse, error) {
	var member bool
	var err error
	switch role {
	case domain.RoleAdmin:
		member, err = e.engine.IsAdmin(ctx, realmID, address)
	case domain.RoleInfuser:
		member, err = e.engine.IsInfuser(ctx, realmID, address)
	case domain.RoleCollection:
		member, err = e.engine.IsCollection(ctx, realmID, address)
	case domain.RoleProxy:
		member, err = e.engine.IsInfusionProxy(ctx, realmID, address)
	default:
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown role: %s", role))
	}
	if err != nil {
		return nil, err
	}

	return &dto.MembershipResponse{
		RealmID: realmID,
		Role:    role,
		Address: address.Hex(),
		Member:  member,
	}, nil
}

func (e *executor) ListMembers(ctx context.Context, realmID uint64, role domain.Role) (*dto.MembersResponse, error) {
	if !role.Valid() {
		return nil, apierrors.NewValidationError(fmt.Sprintf("unknown role: %s", role))
	}
	members, err := e.engine.Members(ctx, realmID, role)
	if err != nil {
		return nil, err
	}
	resp := dto.NewMembersResponse(realmID, role, members)
	return &resp, nil
}

func (e *executor) Infuse(ctx context.Context, caller common.Address, req dto.InfuseRequest) (*dto.AmountResponse, error) {
	input, err := req.ToInput(caller)
	if err != nil {
		return nil, err
	}
	amount, err := e.engine.Infuse(ctx, caller, input, e.clock.Now())
	if err != nil {
		return nil, err
	}
	return &dto.AmountResponse{Amount: amount.String()}, nil
}

func (e *executor) BatchInfuse(ctx context.Context, caller common.Address, req dto.BatchInfuseRequest) (*dto.BatchAmountsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	inputs, err := req.ToInputs(caller)
	if err != nil {
		return nil, err
	}
	amounts, err := e.engine.BatchInfuse(ctx, caller, inputs, e.clock.Now())
	if err != nil {
		return nil, err
	}
	resp := dto.NewBatchAmountsResponse(amounts)
	return &resp, nil
}

func (e *executor) Claim(ctx context.Context, caller common.Address, req dto.ClaimRequest) (*dto.AmountResponse, error) {
	input, err := req.ToInput()
	if err != nil {
		return nil, err
	}
	amount, err := e.engine.Claim(ctx, caller, input, e.clock.Now())
	if err != nil {
		return nil, err
	}
	return &dto.AmountResponse{Amount: amount.String()}, nil
}

func (e *executor) BatchClaim(ctx context.Context, caller common.Address, req dto.BatchClaimRequest) (*dto.BatchAmountsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	inputs, err := req.ToInputs()
	if err != nil {
		return nil, err
	}
	amounts, err := e.engine.BatchClaim(ctx, caller, inputs, e.clock.Now())
	if err != nil {
		return nil, err
	}
	resp := dto.NewBatchAmountsResponse(amounts)
	return &resp, nil
}

func (e *executor) GetTokenData(ctx context.Context, key domain.TokenKey) (*dto.TokenDataResponse, error) {
	data, err := e.engine.TokenData(ctx, key, e.clock.Now())
	if err != nil {
		return nil, err
	}
	resp := dto.NewTokenDataResponse(data)
	return &resp, nil
}
