package main

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/feral-file/ff-infusion/internal/amount"
	"github.com/feral-file/ff-infusion/internal/domain"
)

// realmFile is the YAML description of a realm. Amounts are in whole tokens
// unless suffixed with "wei".
type realmFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Token       string   `yaml:"token"`
	Decimals    *int32   `yaml:"decimals"`
	DailyRate   string   `yaml:"daily_rate"`
	VestingDays int64    `yaml:"vesting_days"`
	Admins      []string `yaml:"admins"`
	Infusers    []string `yaml:"infusers"`
	Collections []string `yaml:"collections"`
	Constraints struct {
		MinInfusionAmount   string `yaml:"min_infusion_amount"`
		MaxInfusionAmount   string `yaml:"max_infusion_amount"`
		MaxTokenBalance     string `yaml:"max_token_balance"`
		MinClaimAmount      string `yaml:"min_claim_amount"`
		RequireNftIsOwned   bool   `yaml:"require_nft_is_owned"`
		AllowMultiInfuse    bool   `yaml:"allow_multi_infuse"`
		AllowPublicInfusion bool   `yaml:"allow_public_infusion"`
		AllowAllCollections bool   `yaml:"allow_all_collections"`
	} `yaml:"constraints"`
}

func loadRealmFile(path string) (domain.CreateRealmInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.CreateRealmInput{}, fmt.Errorf("failed to open realm file: %w", err)
	}
	defer f.Close()
	return parseRealmFile(f)
}

func parseRealmFile(r io.Reader) (domain.CreateRealmInput, error) {
	var input domain.CreateRealmInput

	var file realmFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return input, fmt.Errorf("failed to decode realm file: %w", err)
	}

	decimals := amount.DefaultDecimals
	if file.Decimals != nil {
		decimals = *file.Decimals
	}

	var err error
	input.Name = file.Name
	input.Description = file.Description
	if input.Config.Token, err = domain.ParseAddress(file.Token); err != nil {
		return input, fmt.Errorf("token: %w", err)
	}
	if input.Admins, err = domain.ParseAddresses(file.Admins); err != nil {
		return input, fmt.Errorf("admins: %w", err)
	}
	if input.Infusers, err = domain.ParseAddresses(file.Infusers); err != nil {
		return input, fmt.Errorf("infusers: %w", err)
	}
	if input.Collections, err = domain.ParseAddresses(file.Collections); err != nil {
		return input, fmt.Errorf("collections: %w", err)
	}

	c := &input.Config.Constraints
	amounts := []struct {
		field string
		value string
		out   **big.Int
	}{
		{"min_infusion_amount", file.Constraints.MinInfusionAmount, &c.MinInfusionAmount},
		{"max_infusion_amount", file.Constraints.MaxInfusionAmount, &c.MaxInfusionAmount},
		{"max_token_balance", file.Constraints.MaxTokenBalance, &c.MaxTokenBalance},
		{"min_claim_amount", file.Constraints.MinClaimAmount, &c.MinClaimAmount},
	}
	for _, a := range amounts {
		if a.value == "" {
			*a.out = big.NewInt(0)
			continue
		}
		if *a.out, err = amount.ParseUnits(a.value, decimals); err != nil {
			return input, fmt.Errorf("%s: %w", a.field, err)
		}
	}
	c.RequireNftIsOwned = file.Constraints.RequireNftIsOwned
	c.AllowMultiInfuse = file.Constraints.AllowMultiInfuse
	c.AllowPublicInfusion = file.Constraints.AllowPublicInfusion
	c.AllowAllCollections = file.Constraints.AllowAllCollections

	switch {
	case file.DailyRate != "" && file.VestingDays != 0:
		return input, errors.New("daily_rate and vesting_days are mutually exclusive")
	case file.DailyRate != "":
		if input.Config.DailyRate, err = amount.ParseUnits(file.DailyRate, decimals); err != nil {
			return input, fmt.Errorf("daily_rate: %w", err)
		}
	case file.VestingDays != 0:
		// a full token balance vests within vesting_days
		if input.Config.DailyRate, err = amount.DailyRateFor(c.MaxTokenBalance, file.VestingDays); err != nil {
			return input, fmt.Errorf("vesting_days: %w", err)
		}
	default:
		return input, errors.New("one of daily_rate or vesting_days is required")
	}

	return input, nil
}
