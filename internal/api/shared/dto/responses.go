package dto

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
)

// ConstraintsResponse represents realm constraints
type ConstraintsResponse struct {
	MinInfusionAmount   string `json:"min_infusion_amount"`
	MaxInfusionAmount   string `json:"max_infusion_amount"`
	MaxTokenBalance     string `json:"max_token_balance"`
	MinClaimAmount      string `json:"min_claim_amount"`
	RequireNftIsOwned   bool   `json:"require_nft_is_owned"`
	AllowMultiInfuse    bool   `json:"allow_multi_infuse"`
	AllowPublicInfusion bool   `json:"allow_public_infusion"`
	AllowAllCollections bool   `json:"allow_all_collections"`
}

// RealmResponse represents a realm and its configuration
type RealmResponse struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Token       string              `json:"token"`
	DailyRate   string              `json:"daily_rate"`
	Constraints ConstraintsResponse `json:"constraints"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewRealmResponse maps a realm to its response
func NewRealmResponse(r *domain.Realm) RealmResponse {
	c := r.Config.Constraints
	return RealmResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Token:       r.Config.Token.Hex(),
		DailyRate:   amountString(r.Config.DailyRate),
		Constraints: ConstraintsResponse{
			MinInfusionAmount:   amountString(c.MinInfusionAmount),
			MaxInfusionAmount:   amountString(c.MaxInfusionAmount),
			MaxTokenBalance:     amountString(c.MaxTokenBalance),
			MinClaimAmount:      amountString(c.MinClaimAmount),
			RequireNftIsOwned:   c.RequireNftIsOwned,
			AllowMultiInfuse:    c.AllowMultiInfuse,
			AllowPublicInfusion: c.AllowPublicInfusion,
			AllowAllCollections: c.AllowAllCollections,
		},
		CreatedAt: r.CreatedAt,
	}
}

// CreateRealmResponse represents the response for creating a realm
type CreateRealmResponse struct {
	RealmID uint64 `json:"realm_id"`
}

// MembershipResponse answers a set membership query
type MembershipResponse struct {
	RealmID uint64      `json:"realm_id"`
	Role    domain.Role `json:"role"`
	Address string      `json:"address"`
	Member  bool        `json:"member"`
}

// MembersResponse lists the members of a set
type MembersResponse struct {
	RealmID uint64      `json:"realm_id"`
	Role    domain.Role `json:"role"`
	Members []string    `json:"members"`
}

// NewMembersResponse maps addresses to their hex form
func NewMembersResponse(realmID uint64, role domain.Role, members []common.Address) MembersResponse {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Hex()
	}
	return MembersResponse{RealmID: realmID, Role: role, Members: out}
}

// AmountResponse carries the effective amount of an infusion or claim
type AmountResponse struct {
	Amount string `json:"amount"`
}

// BatchAmountsResponse carries the effective amount of every batch item in order
type BatchAmountsResponse struct {
	Amounts []string `json:"amounts"`
}

// NewBatchAmountsResponse maps amounts to decimal strings
func NewBatchAmountsResponse(amounts []*big.Int) BatchAmountsResponse {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = amountString(a)
	}
	return BatchAmountsResponse{Amounts: out}
}

// TokenDataResponse represents the state of a token inside a realm
type TokenDataResponse struct {
	RealmID       uint64 `json:"realm_id"`
	Collection    string `json:"collection"`
	TokenID       string `json:"token_id"`
	Infused       bool   `json:"infused"`
	Balance       string `json:"balance"`
	LastClaimAt   int64  `json:"last_claim_at"`
	Claimable     string `json:"claimable"`
	FullyVestedAt int64  `json:"fully_vested_at"`
}

// NewTokenDataResponse maps token data to its response
func NewTokenDataResponse(d *engine.TokenData) TokenDataResponse {
	return TokenDataResponse{
		RealmID:       d.Key.RealmID,
		Collection:    d.Key.Collection.Hex(),
		TokenID:       d.Key.TokenID.String(),
		Infused:       d.Infused,
		Balance:       amountString(d.Balance),
		LastClaimAt:   d.LastClaimAt,
		Claimable:     amountString(d.Claimable),
		FullyVestedAt: d.FullyVestedAt,
	}
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
