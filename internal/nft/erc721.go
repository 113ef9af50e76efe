package nft

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/adapter"
	"github.com/feral-file/ff-infusion/internal/logger"
)

const erc721ABIJSON = `[
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"getApproved","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"name":"isApprovedForAll","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}
]`

var erc721ABI = mustParseABI(erc721ABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ERC721 ABI: %v", err))
	}
	return parsed
}

// ERC721Config configures the RPC retry policy of the ERC-721 registry
type ERC721Config struct {
	// RetryMaxElapsed bounds the total time spent retrying a call
	RetryMaxElapsed time.Duration
	// RetryInitialInterval is the first backoff interval
	RetryInitialInterval time.Duration
}

type erc721Registry struct {
	client adapter.EthClient
	config ERC721Config
}

// NewERC721Registry creates a registry reading ERC-721 contracts over JSON-RPC
func NewERC721Registry(client adapter.EthClient, config ERC721Config) Registry {
	if config.RetryMaxElapsed == 0 {
		config.RetryMaxElapsed = 10 * time.Second
	}
	if config.RetryInitialInterval == 0 {
		config.RetryInitialInterval = 200 * time.Millisecond
	}
	return &erc721Registry{client: client, config: config}
}

// Exists checks if ownerOf succeeds for the token
func (r *erc721Registry) Exists(ctx context.Context, collection common.Address, tokenID *big.Int) (bool, error) {
	_, err := r.OwnerOf(ctx, collection, tokenID)
	if errors.Is(err, ErrTokenNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OwnerOf calls ownerOf(tokenId). A revert or an empty answer means the token does not exist.
func (r *erc721Registry) OwnerOf(ctx context.Context, collection common.Address, tokenID *big.Int) (common.Address, error) {
	var owner common.Address
	err := r.call(ctx, collection, &owner, "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	if owner == (common.Address{}) {
		return common.Address{}, ErrTokenNotFound
	}
	return owner, nil
}

// IsApprovedOrOwner mirrors the ERC-721 _isApprovedOrOwner check
func (r *erc721Registry) IsApprovedOrOwner(ctx context.Context, collection common.Address, tokenID *big.Int, spender common.Address) (bool, error) {
	owner, err := r.OwnerOf(ctx, collection, tokenID)
	if err != nil {
		return false, err
	}
	if owner == spender {
		return true, nil
	}

	var approved common.Address
	if err := r.call(ctx, collection, &approved, "getApproved", tokenID); err != nil {
		return false, err
	}
	if approved == spender {
		return true, nil
	}

	var operator bool
	if err := r.call(ctx, collection, &operator, "isApprovedForAll", owner, spender); err != nil {
		return false, err
	}
	return operator, nil
}

// call packs, executes and unpacks a view call, retrying transport failures
func (r *erc721Registry) call(ctx context.Context, collection common.Address, out interface{}, method string, args ...interface{}) error {
	data, err := erc721ABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s: %w", method, err)
	}

	var result []byte
	operation := func() error {
		result, err = r.client.CallContract(ctx, ethereum.CallMsg{
			To:   &collection,
			Data: data,
		}, nil)
		if err == nil {
			return nil
		}
		if isRevert(err) {
			return backoff.Permanent(ErrTokenNotFound)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.RetryInitialInterval
	b.MaxElapsedTime = r.config.RetryMaxElapsed

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "ERC721 call failed, retrying",
			zap.String("method", method),
			zap.String("collection", collection.Hex()),
			zap.Error(err),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	// calls to an address without code answer with no data
	if len(result) == 0 {
		return ErrTokenNotFound
	}

	if err := erc721ABI.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return nil
}

// isRevert checks if a call error is an execution revert rather than a transport failure
func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "execution reverted")
}
