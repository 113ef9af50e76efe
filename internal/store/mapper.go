package store

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/store/schema"
)

func rowFromRealm(realm *domain.Realm) schema.Realm {
	c := realm.Config.Constraints
	return schema.Realm{
		Name:                realm.Name,
		Description:         realm.Description,
		Token:               realm.Config.Token.Hex(),
		DailyRate:           numeric(realm.Config.DailyRate),
		MinInfusionAmount:   numeric(c.MinInfusionAmount),
		MaxInfusionAmount:   numeric(c.MaxInfusionAmount),
		MaxTokenBalance:     numeric(c.MaxTokenBalance),
		MinClaimAmount:      numeric(c.MinClaimAmount),
		RequireNftIsOwned:   c.RequireNftIsOwned,
		AllowMultiInfuse:    c.AllowMultiInfuse,
		AllowPublicInfusion: c.AllowPublicInfusion,
		AllowAllCollections: c.AllowAllCollections,
		CreatedAt:           realm.CreatedAt,
	}
}

func realmFromRow(row schema.Realm) (*domain.Realm, error) {
	values := make([]*big.Int, 5)
	for i, s := range []string{row.DailyRate, row.MinInfusionAmount, row.MaxInfusionAmount, row.MaxTokenBalance, row.MinClaimAmount} {
		v, err := domain.ParseAmount(s)
		if err != nil {
			return nil, fmt.Errorf("corrupted realm %d: %w", row.ID, err)
		}
		values[i] = v
	}

	return &domain.Realm{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Config: domain.RealmConfig{
			Token:     common.HexToAddress(row.Token),
			DailyRate: values[0],
			Constraints: domain.RealmConstraints{
				MinInfusionAmount:   values[1],
				MaxInfusionAmount:   values[2],
				MaxTokenBalance:     values[3],
				MinClaimAmount:      values[4],
				RequireNftIsOwned:   row.RequireNftIsOwned,
				AllowMultiInfuse:    row.AllowMultiInfuse,
				AllowPublicInfusion: row.AllowPublicInfusion,
				AllowAllCollections: row.AllowAllCollections,
			},
		},
		CreatedAt: row.CreatedAt,
	}, nil
}

func tokenRecordFromRow(row schema.TokenRecord) (*domain.TokenRecord, error) {
	tokenID, err := domain.ParseTokenID(row.TokenID)
	if err != nil {
		return nil, fmt.Errorf("corrupted token record: %w", err)
	}
	balance, err := domain.ParseAmount(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("corrupted token record: %w", err)
	}
	return &domain.TokenRecord{
		Key:         domain.NewTokenKey(row.RealmID, common.HexToAddress(row.Collection), tokenID),
		Balance:     balance,
		LastClaimAt: row.LastClaimAt,
	}, nil
}

func numeric(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
