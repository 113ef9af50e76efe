package nft_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-infusion/internal/mocks"
	"github.com/feral-file/ff-infusion/internal/nft"
)

// callResult is the canned answer to one contract method
type callResult struct {
	data []byte
	err  error
}

// expectCalls routes CallContract by method selector
func expectCalls(t *testing.T, client *mocks.MockEthClient, results map[string][]callResult) {
	calls := make(map[string]int)
	client.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			require.NotNil(t, msg.To)
			assert.Equal(t, testCollection, *msg.To)
			for name, method := range nft.ERC721ABI.Methods {
				if !bytes.HasPrefix(msg.Data, method.ID) {
					continue
				}
				answers, ok := results[name]
				require.True(t, ok, "unexpected call to %s", name)
				i := calls[name]
				if i >= len(answers) {
					i = len(answers) - 1
				}
				calls[name]++
				return answers[i].data, answers[i].err
			}
			t.Fatalf("unknown selector %x", msg.Data[:4])
			return nil, nil
		}).
		AnyTimes()
}

func packOutput(t *testing.T, method string, values ...interface{}) []byte {
	data, err := nft.ERC721ABI.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return data
}

type rpcDataError struct{}

func (rpcDataError) Error() string          { return "execution reverted: ERC721: invalid token ID" }
func (rpcDataError) ErrorData() interface{} { return "0x08c379a0" }

func newTestERC721(t *testing.T) (nft.Registry, *mocks.MockEthClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)
	return nft.NewERC721Registry(client, nft.ERC721Config{
		RetryMaxElapsed:      time.Second,
		RetryInitialInterval: time.Millisecond,
	}), client
}

func TestERC721_OwnerOf(t *testing.T) {
	registry, client := newTestERC721(t)
	expectCalls(t, client, map[string][]callResult{
		"ownerOf": {{data: packOutput(t, "ownerOf", testOwner)}},
	})

	owner, err := registry.OwnerOf(context.Background(), testCollection, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)

	exists, err := registry.Exists(context.Background(), testCollection, big.NewInt(1))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestERC721_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		result callResult
	}{
		{name: "revert with data", result: callResult{err: rpcDataError{}}},
		{name: "revert message", result: callResult{err: errors.New("execution reverted")}},
		{name: "contract without code", result: callResult{data: nil}},
		{name: "zero owner", result: callResult{data: packOutput(t, "ownerOf", common.Address{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, client := newTestERC721(t)
			expectCalls(t, client, map[string][]callResult{"ownerOf": {tt.result}})

			_, err := registry.OwnerOf(context.Background(), testCollection, big.NewInt(1))
			assert.ErrorIs(t, err, nft.ErrTokenNotFound)

			exists, err := registry.Exists(context.Background(), testCollection, big.NewInt(1))
			require.NoError(t, err)
			assert.False(t, exists)

			_, err = registry.IsApprovedOrOwner(context.Background(), testCollection, big.NewInt(1), testOwner)
			assert.ErrorIs(t, err, nft.ErrTokenNotFound)
		})
	}
}

func TestERC721_RetriesTransportErrors(t *testing.T) {
	registry, client := newTestERC721(t)
	expectCalls(t, client, map[string][]callResult{
		"ownerOf": {
			{err: errors.New("connection refused")},
			{err: errors.New("503 service unavailable")},
			{data: packOutput(t, "ownerOf", testOwner)},
		},
	})

	owner, err := registry.OwnerOf(context.Background(), testCollection, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)
}

func TestERC721_GivesUpAfterMaxElapsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)
	registry := nft.NewERC721Registry(client, nft.ERC721Config{
		RetryMaxElapsed:      20 * time.Millisecond,
		RetryInitialInterval: time.Millisecond,
	})
	expectCalls(t, client, map[string][]callResult{
		"ownerOf": {{err: errors.New("connection refused")}},
	})

	_, err := registry.OwnerOf(context.Background(), testCollection, big.NewInt(1))
	require.Error(t, err)
	assert.NotErrorIs(t, err, nft.ErrTokenNotFound)
}

func TestERC721_IsApprovedOrOwner(t *testing.T) {
	tests := []struct {
		name     string
		spender  common.Address
		approved common.Address
		operator bool
		want     bool
	}{
		{name: "owner", spender: testOwner, want: true},
		{name: "approved", spender: testSpender, approved: testSpender, want: true},
		{name: "operator", spender: testOperator, operator: true, want: true},
		{name: "stranger", spender: testSpender, approved: testOperator, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, client := newTestERC721(t)
			expectCalls(t, client, map[string][]callResult{
				"ownerOf":          {{data: packOutput(t, "ownerOf", testOwner)}},
				"getApproved":      {{data: packOutput(t, "getApproved", tt.approved)}},
				"isApprovedForAll": {{data: packOutput(t, "isApprovedForAll", tt.operator)}},
			})

			ok, err := registry.IsApprovedOrOwner(context.Background(), testCollection, big.NewInt(1), tt.spender)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestERC721_CanceledContext(t *testing.T) {
	registry, client := newTestERC721(t)
	expectCalls(t, client, map[string][]callResult{
		"ownerOf": {{err: errors.New("connection refused")}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := registry.OwnerOf(ctx, testCollection, big.NewInt(1))
	assert.Error(t, err)
}
