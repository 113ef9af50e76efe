package dto

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-infusion/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-infusion/internal/api/shared/errors"
	"github.com/feral-file/ff-infusion/internal/domain"
)

// ConstraintsRequest carries realm constraints; amounts are base-unit decimal strings
type ConstraintsRequest struct {
	MinInfusionAmount   string `json:"min_infusion_amount"`
	MaxInfusionAmount   string `json:"max_infusion_amount"`
	MaxTokenBalance     string `json:"max_token_balance"`
	MinClaimAmount      string `json:"min_claim_amount"`
	RequireNftIsOwned   bool   `json:"require_nft_is_owned"`
	AllowMultiInfuse    bool   `json:"allow_multi_infuse"`
	AllowPublicInfusion bool   `json:"allow_public_infusion"`
	AllowAllCollections bool   `json:"allow_all_collections"`
}

// CreateRealmRequest represents the request body for creating a realm
type CreateRealmRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Admins      []string           `json:"admins"`
	Infusers    []string           `json:"infusers"`
	Collections []string           `json:"collections"`
	Token       string             `json:"token"`
	DailyRate   string             `json:"daily_rate"`
	Constraints ConstraintsRequest `json:"constraints"`
}

// Validate validates the request body shape. Realm rules are enforced by the engine.
func (r *CreateRealmRequest) Validate() error {
	if len(r.Name) > constants.MAX_REALM_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", constants.MAX_REALM_NAME_LENGTH))
	}
	if len(r.Description) > constants.MAX_DESCRIPTION_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("description must be at most %d characters", constants.MAX_DESCRIPTION_LENGTH))
	}
	for field, list := range map[string][]string{"admins": r.Admins, "infusers": r.Infusers, "collections": r.Collections} {
		if len(list) > constants.MAX_ADDRESSES_PER_DELTA {
			return apierrors.NewValidationError(fmt.Sprintf("maximum %d %s allowed", constants.MAX_ADDRESSES_PER_DELTA, field))
		}
	}
	return nil
}

// ToInput converts the request into engine input
func (r *CreateRealmRequest) ToInput() (domain.CreateRealmInput, error) {
	var input domain.CreateRealmInput
	var err error

	input.Name = r.Name
	input.Description = r.Description
	if input.Admins, err = parseAddressList("admins", r.Admins); err != nil {
		return input, err
	}
	if input.Infusers, err = parseAddressList("infusers", r.Infusers); err != nil {
		return input, err
	}
	if input.Collections, err = parseAddressList("collections", r.Collections); err != nil {
		return input, err
	}
	if input.Config.Token, err = parseAddress("token", r.Token); err != nil {
		return input, err
	}
	if input.Config.DailyRate, err = parseOptionalAmount("daily_rate", r.DailyRate); err != nil {
		return input, err
	}

	c := &input.Config.Constraints
	if c.MinInfusionAmount, err = parseOptionalAmount("min_infusion_amount", r.Constraints.MinInfusionAmount); err != nil {
		return input, err
	}
	if c.MaxInfusionAmount, err = parseOptionalAmount("max_infusion_amount", r.Constraints.MaxInfusionAmount); err != nil {
		return input, err
	}
	if c.MaxTokenBalance, err = parseOptionalAmount("max_token_balance", r.Constraints.MaxTokenBalance); err != nil {
		return input, err
	}
	if c.MinClaimAmount, err = parseOptionalAmount("min_claim_amount", r.Constraints.MinClaimAmount); err != nil {
		return input, err
	}
	c.RequireNftIsOwned = r.Constraints.RequireNftIsOwned
	c.AllowMultiInfuse = r.Constraints.AllowMultiInfuse
	c.AllowPublicInfusion = r.Constraints.AllowPublicInfusion
	c.AllowAllCollections = r.Constraints.AllowAllCollections
	return input, nil
}

// ModifyRealmRequest represents the request body for modifying realm membership
type ModifyRealmRequest struct {
	AdminsToAdd         []string `json:"admins_to_add"`
	AdminsToRemove      []string `json:"admins_to_remove"`
	InfusersToAdd       []string `json:"infusers_to_add"`
	InfusersToRemove    []string `json:"infusers_to_remove"`
	CollectionsToAdd    []string `json:"collections_to_add"`
	CollectionsToRemove []string `json:"collections_to_remove"`
}

// Validate validates the request body
func (r *ModifyRealmRequest) Validate() error {
	total := len(r.AdminsToAdd) + len(r.AdminsToRemove) +
		len(r.InfusersToAdd) + len(r.InfusersToRemove) +
		len(r.CollectionsToAdd) + len(r.CollectionsToRemove)
	if total == 0 {
		return apierrors.NewValidationError("at least one membership change is required")
	}
	if total > constants.MAX_ADDRESSES_PER_DELTA*6 {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d addresses allowed", constants.MAX_ADDRESSES_PER_DELTA*6))
	}
	return nil
}

// ToInput converts the request into engine input
func (r *ModifyRealmRequest) ToInput(realmID uint64) (domain.ModifyRealmInput, error) {
	input := domain.ModifyRealmInput{RealmID: realmID}
	lists := []struct {
		field  string
		values []string
		out    *[]common.Address
	}{
		{"admins_to_add", r.AdminsToAdd, &input.AdminsToAdd},
		{"admins_to_remove", r.AdminsToRemove, &input.AdminsToRemove},
		{"infusers_to_add", r.InfusersToAdd, &input.InfusersToAdd},
		{"infusers_to_remove", r.InfusersToRemove, &input.InfusersToRemove},
		{"collections_to_add", r.CollectionsToAdd, &input.CollectionsToAdd},
		{"collections_to_remove", r.CollectionsToRemove, &input.CollectionsToRemove},
	}
	for _, l := range lists {
		addresses, err := parseAddressList(l.field, l.values)
		if err != nil {
			return input, err
		}
		*l.out = addresses
	}
	return input, nil
}

// InfuseRequest represents a single infusion
type InfuseRequest struct {
	RealmID    uint64 `json:"realm_id"`
	Collection string `json:"collection"`
	TokenID    string `json:"token_id"`
	// Infuser defaults to the caller
	Infuser string `json:"infuser"`
	Amount  string `json:"amount"`
	Comment string `json:"comment"`
}

// ToInput converts the request into engine input
func (r *InfuseRequest) ToInput(caller common.Address) (domain.InfuseInput, error) {
	input := domain.InfuseInput{RealmID: r.RealmID, Infuser: caller, Comment: r.Comment}
	var err error

	if len(r.Comment) > constants.MAX_COMMENT_LENGTH {
		return input, apierrors.NewValidationError(fmt.Sprintf("comment must be at most %d characters", constants.MAX_COMMENT_LENGTH))
	}
	if input.Collection, err = parseAddress("collection", r.Collection); err != nil {
		return input, err
	}
	if input.TokenID, err = parseTokenID(r.TokenID); err != nil {
		return input, err
	}
	if r.Infuser != "" {
		if input.Infuser, err = parseAddress("infuser", r.Infuser); err != nil {
			return input, err
		}
	}
	if input.Amount, err = parseAmount("amount", r.Amount); err != nil {
		return input, err
	}
	return input, nil
}

// BatchInfuseRequest represents the request body for a batch infusion
type BatchInfuseRequest struct {
	Items []InfuseRequest `json:"items"`
}

// Validate validates the request body
func (r *BatchInfuseRequest) Validate() error {
	return validateBatchSize(len(r.Items))
}

// ToInputs converts every item into engine input
func (r *BatchInfuseRequest) ToInputs(caller common.Address) ([]domain.InfuseInput, error) {
	inputs := make([]domain.InfuseInput, len(r.Items))
	for i := range r.Items {
		input, err := r.Items[i].ToInput(caller)
		if err != nil {
			return nil, itemValidationError(i, err)
		}
		inputs[i] = input
	}
	return inputs, nil
}

// ClaimRequest represents a single claim
type ClaimRequest struct {
	RealmID    uint64 `json:"realm_id"`
	Collection string `json:"collection"`
	TokenID    string `json:"token_id"`
	Amount     string `json:"amount"`
}

// ToInput converts the request into engine input
func (r *ClaimRequest) ToInput() (domain.ClaimInput, error) {
	input := domain.ClaimInput{RealmID: r.RealmID}
	var err error

	if input.Collection, err = parseAddress("collection", r.Collection); err != nil {
		return input, err
	}
	if input.TokenID, err = parseTokenID(r.TokenID); err != nil {
		return input, err
	}
	if input.Amount, err = parseAmount("amount", r.Amount); err != nil {
		return input, err
	}
	return input, nil
}

// BatchClaimRequest represents the request body for a batch claim
type BatchClaimRequest struct {
	Items []ClaimRequest `json:"items"`
}

// Validate validates the request body
func (r *BatchClaimRequest) Validate() error {
	return validateBatchSize(len(r.Items))
}

// ToInputs converts every item into engine input
func (r *BatchClaimRequest) ToInputs() ([]domain.ClaimInput, error) {
	inputs := make([]domain.ClaimInput, len(r.Items))
	for i := range r.Items {
		input, err := r.Items[i].ToInput()
		if err != nil {
			return nil, itemValidationError(i, err)
		}
		inputs[i] = input
	}
	return inputs, nil
}

func validateBatchSize(n int) error {
	if n > constants.MAX_BATCH_ITEMS_PER_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d items allowed", constants.MAX_BATCH_ITEMS_PER_REQUEST))
	}
	return nil
}

func itemValidationError(index int, err error) error {
	apiErr := apierrors.NewValidationError(fmt.Sprintf("item %d: %s", index, detailsOf(err)))
	apiErr.Item = &index
	return apiErr
}

func detailsOf(err error) string {
	if apiErr, ok := err.(*apierrors.APIError); ok {
		return apiErr.Details
	}
	return err.Error()
}

func parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, apierrors.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	address, err := domain.ParseAddress(value)
	if err != nil {
		return common.Address{}, apierrors.NewValidationError(fmt.Sprintf("%s: %s", field, err.Error()))
	}
	return address, nil
}

func parseAddressList(field string, values []string) ([]common.Address, error) {
	addresses, err := domain.ParseAddresses(values)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s: %s", field, err.Error()))
	}
	return addresses, nil
}

func parseTokenID(value string) (*big.Int, error) {
	tokenID, err := domain.ParseTokenID(value)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	return tokenID, nil
}

func parseAmount(field, value string) (*big.Int, error) {
	amount, err := domain.ParseAmount(value)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s: %s", field, err.Error()))
	}
	return amount, nil
}

// parseOptionalAmount leaves an omitted amount nil for the engine to judge
func parseOptionalAmount(field, value string) (*big.Int, error) {
	if value == "" {
		return nil, nil
	}
	return parseAmount(field, value)
}
