package domain

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia
}

// Role identifies one of the per-realm membership sets
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInfuser    Role = "infuser"
	RoleCollection Role = "collection"
	RoleProxy      Role = "proxy"
)

// Valid checks if the role names a known membership set
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInfuser, RoleCollection, RoleProxy:
		return true
	default:
		return false
	}
}

// RealmConstraints bounds infusions and claims inside a realm.
// Set once at creation and immutable thereafter.
type RealmConstraints struct {
	MinInfusionAmount   *big.Int `json:"min_infusion_amount"`
	MaxInfusionAmount   *big.Int `json:"max_infusion_amount"`
	MaxTokenBalance     *big.Int `json:"max_token_balance"`
	MinClaimAmount      *big.Int `json:"min_claim_amount"`
	RequireNftIsOwned   bool     `json:"require_nft_is_owned"`
	AllowMultiInfuse    bool     `json:"allow_multi_infuse"`
	AllowPublicInfusion bool     `json:"allow_public_infusion"`
	AllowAllCollections bool     `json:"allow_all_collections"`
}

// RealmConfig is the immutable streaming configuration of a realm
type RealmConfig struct {
	// Token is the fungible token ledger this realm streams
	Token common.Address `json:"token"`
	// DailyRate is the amount unlocked per token id per 24 hours
	DailyRate   *big.Int         `json:"daily_rate"`
	Constraints RealmConstraints `json:"constraints"`
}

// Realm is an isolated configuration domain (tenant)
type Realm struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Config      RealmConfig `json:"config"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TokenKey identifies a token record inside a realm
type TokenKey struct {
	RealmID    uint64
	Collection common.Address
	TokenID    *big.Int
}

// NewTokenKey creates a new TokenKey
func NewTokenKey(realmID uint64, collection common.Address, tokenID *big.Int) TokenKey {
	return TokenKey{RealmID: realmID, Collection: collection, TokenID: tokenID}
}

// String returns the canonical representation: realmId:collection:tokenId
func (k TokenKey) String() string {
	return fmt.Sprintf("%d:%s:%s", k.RealmID, k.Collection.Hex(), k.TokenID.String())
}

// TokenRecord is the locked balance of a single NFT inside a realm
type TokenRecord struct {
	Key     TokenKey
	Balance *big.Int
	// LastClaimAt is the virtual clock (unix seconds) up to which accrual has been consumed
	LastClaimAt int64
}

// Clone returns a deep copy of the record
func (r *TokenRecord) Clone() *TokenRecord {
	if r == nil {
		return nil
	}
	return &TokenRecord{
		Key: TokenKey{
			RealmID:    r.Key.RealmID,
			Collection: r.Key.Collection,
			TokenID:    new(big.Int).Set(r.Key.TokenID),
		},
		Balance:     new(big.Int).Set(r.Balance),
		LastClaimAt: r.LastClaimAt,
	}
}

// CreateRealmInput is the argument set of createRealm
type CreateRealmInput struct {
	Name        string
	Description string
	Admins      []common.Address
	Infusers    []common.Address
	Collections []common.Address
	Config      RealmConfig
}

// ModifyRealmInput carries the membership deltas of modifyRealm
type ModifyRealmInput struct {
	RealmID             uint64
	AdminsToAdd         []common.Address
	AdminsToRemove      []common.Address
	InfusersToAdd       []common.Address
	InfusersToRemove    []common.Address
	CollectionsToAdd    []common.Address
	CollectionsToRemove []common.Address
}

// InfuseInput is a single infusion request
type InfuseInput struct {
	RealmID    uint64
	Collection common.Address
	TokenID    *big.Int
	// Infuser is the depositor the infusion is attributed to
	Infuser common.Address
	Amount  *big.Int
	Comment string
}

// Key returns the token key targeted by the infusion
func (i InfuseInput) Key() TokenKey {
	return NewTokenKey(i.RealmID, i.Collection, i.TokenID)
}

// ClaimInput is a single claim request
type ClaimInput struct {
	RealmID    uint64
	Collection common.Address
	TokenID    *big.Int
	Amount     *big.Int
}

// Key returns the token key targeted by the claim
func (c ClaimInput) Key() TokenKey {
	return NewTokenKey(c.RealmID, c.Collection, c.TokenID)
}

// IsZeroAddress checks if an address is the null address
func IsZeroAddress(address common.Address) bool {
	return address == (common.Address{})
}

// ParseAddress parses a hex address, rejecting malformed input
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address: %s", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAddresses parses a list of hex addresses
func ParseAddresses(values []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(values))
	for _, v := range values {
		address, err := ParseAddress(v)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

// ParseTokenID parses a decimal token id
func ParseTokenID(s string) (*big.Int, error) {
	if s == "" || !validNumber(s) {
		return nil, fmt.Errorf("invalid token id: %s", s)
	}
	tokenID, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id: %s", s)
	}
	return tokenID, nil
}

// ParseAmount parses a non-negative base-unit amount
func ParseAmount(s string) (*big.Int, error) {
	if s == "" || !validNumber(s) {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %s", s)
	}
	return amount, nil
}

var numberRegexp = regexp.MustCompile(`^[0-9]+$`)

// validNumber checks if a string is an unsigned decimal number
func validNumber(s string) bool {
	return numberRegexp.MatchString(s)
}
