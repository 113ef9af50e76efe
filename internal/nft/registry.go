// Package nft answers ownership and approval questions about non-fungible tokens.
package nft

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrTokenNotFound is returned when a token does not exist in its collection
var ErrTokenNotFound = errors.New("token not found")

// Registry is the NFT registry collaborator
//
//go:generate mockgen -source=registry.go -destination=../mocks/nft_registry.go -package=mocks -mock_names=Registry=MockNFTRegistry
type Registry interface {
	// Exists checks if the token has been minted and not burned
	Exists(ctx context.Context, collection common.Address, tokenID *big.Int) (bool, error)
	// OwnerOf returns the owner of the token, ErrTokenNotFound when it does not exist
	OwnerOf(ctx context.Context, collection common.Address, tokenID *big.Int) (common.Address, error)
	// IsApprovedOrOwner checks if spender owns the token, is approved for it or is an operator of its owner
	IsApprovedOrOwner(ctx context.Context, collection common.Address, tokenID *big.Int, spender common.Address) (bool, error)
}

// tokenRef identifies a token across collections
type tokenRef struct {
	collection common.Address
	tokenID    string
}

func ref(collection common.Address, tokenID *big.Int) tokenRef {
	return tokenRef{collection: collection, tokenID: tokenID.String()}
}
