// Package access answers the per-realm permission questions asked by the engine.
package access

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/domain"
)

// Membership is the read side of the four per-realm membership sets
//
//go:generate mockgen -source=access.go -destination=../mocks/access.go -package=mocks -mock_names=Membership=MockMembership
type Membership interface {
	IsMember(ctx context.Context, realmID uint64, role domain.Role, address common.Address) (bool, error)
}

// ProxyPolicy decides who may manage the infusion proxies of a realm
type ProxyPolicy string

const (
	// ProxyPolicyOpen only requires the realm to exist
	ProxyPolicyOpen ProxyPolicy = "open"
	// ProxyPolicyAdmin requires the caller to be a realm admin
	ProxyPolicyAdmin ProxyPolicy = "admin"
)

// Valid checks if the policy is known
func (p ProxyPolicy) Valid() bool {
	return p == ProxyPolicyOpen || p == ProxyPolicyAdmin
}

// Policy is the capability object of a single realm
type Policy struct {
	realm       *domain.Realm
	members     Membership
	proxyPolicy ProxyPolicy
}

// NewPolicy creates the policy of a realm
func NewPolicy(realm *domain.Realm, members Membership, proxyPolicy ProxyPolicy) *Policy {
	return &Policy{realm: realm, members: members, proxyPolicy: proxyPolicy}
}

// Realm returns the realm the policy was built for
func (p *Policy) Realm() *domain.Realm {
	return p.realm
}

// CanAdminister checks if the caller is a realm admin
func (p *Policy) CanAdminister(ctx context.Context, caller common.Address) (bool, error) {
	return p.isMember(ctx, domain.RoleAdmin, caller)
}

// CanManageProxies checks if the caller may allow or deny infusion proxies
func (p *Policy) CanManageProxies(ctx context.Context, caller common.Address) (bool, error) {
	if p.proxyPolicy == ProxyPolicyAdmin {
		return p.CanAdminister(ctx, caller)
	}
	return true, nil
}

// IsEligibleCollection checks if tokens of the collection may be infused
func (p *Policy) IsEligibleCollection(ctx context.Context, collection common.Address) (bool, error) {
	if p.realm.Config.Constraints.AllowAllCollections {
		return true, nil
	}
	return p.isMember(ctx, domain.RoleCollection, collection)
}

// CanDeposit checks that the caller may infuse on behalf of the depositor and
// that the depositor may infuse at all. It returns the domain error describing
// the first failed check.
func (p *Policy) CanDeposit(ctx context.Context, caller, depositor common.Address) error {
	if caller != depositor {
		proxy, err := p.isMember(ctx, domain.RoleProxy, caller)
		if err != nil {
			return err
		}
		if !proxy {
			return domain.ErrInvalidProxyInfusion
		}
	}

	if p.realm.Config.Constraints.AllowPublicInfusion {
		return nil
	}

	infuser, err := p.isMember(ctx, domain.RoleInfuser, depositor)
	if err != nil {
		return err
	}
	if !infuser {
		return domain.ErrInvalidInfuser
	}
	return nil
}

func (p *Policy) isMember(ctx context.Context, role domain.Role, address common.Address) (bool, error) {
	ok, err := p.members.IsMember(ctx, p.realm.ID, role, address)
	if err != nil {
		return false, fmt.Errorf("failed to check %s membership: %w", role, err)
	}
	return ok, nil
}
