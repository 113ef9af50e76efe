package access

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/domain"
)

// Delta is a set of additions and removals applied to one membership set
type Delta struct {
	Role   domain.Role
	Add    []common.Address
	Remove []common.Address
}

// Deltas returns the membership deltas of a modifyRealm call in application order
func Deltas(input domain.ModifyRealmInput) []Delta {
	return []Delta{
		{Role: domain.RoleAdmin, Add: input.AdminsToAdd, Remove: input.AdminsToRemove},
		{Role: domain.RoleInfuser, Add: input.InfusersToAdd, Remove: input.InfusersToRemove},
		{Role: domain.RoleCollection, Add: input.CollectionsToAdd, Remove: input.CollectionsToRemove},
	}
}

// InitialDeltas returns the additions carried by a createRealm call
func InitialDeltas(input domain.CreateRealmInput) []Delta {
	return []Delta{
		{Role: domain.RoleAdmin, Add: input.Admins},
		{Role: domain.RoleInfuser, Add: input.Infusers},
		{Role: domain.RoleCollection, Add: input.Collections},
	}
}

// Validate rejects zero addresses with the error of the delta's set
func (d Delta) Validate() error {
	for _, list := range [][]common.Address{d.Add, d.Remove} {
		for _, address := range list {
			if domain.IsZeroAddress(address) {
				return InvalidMemberError(d.Role)
			}
		}
	}
	return nil
}

// Empty checks if the delta changes nothing
func (d Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

// InvalidMemberError returns the error reported for a zero address in a set
func InvalidMemberError(role domain.Role) error {
	switch role {
	case domain.RoleAdmin:
		return domain.ErrInvalidAdmin
	case domain.RoleInfuser:
		return domain.ErrInvalidInfuserAddress
	case domain.RoleCollection:
		return domain.ErrInvalidCollectionAddr
	default:
		return domain.ErrInvalidProxy
	}
}

// Dedupe returns the addresses in first-seen order without repeats
func Dedupe(addresses []common.Address) []common.Address {
	seen := make(map[common.Address]struct{}, len(addresses))
	out := make([]common.Address, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
