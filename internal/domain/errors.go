package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected operation
type ErrorKind string

const (
	KindConfig              ErrorKind = "config"
	KindNotFound            ErrorKind = "not_found"
	KindAuthorization       ErrorKind = "authorization"
	KindProxyAuthorization  ErrorKind = "proxy_authorization"
	KindNotOwner            ErrorKind = "not_owner"
	KindInvalidCollection   ErrorKind = "invalid_collection"
	KindInvalidToken        ErrorKind = "invalid_token"
	KindOwnership           ErrorKind = "ownership"
	KindAmountRange         ErrorKind = "amount_range"
	KindAmountTooLow        ErrorKind = "amount_too_low"
	KindCapacity            ErrorKind = "capacity"
	KindMultiInfuseDisabled ErrorKind = "multi_infuse_disabled"
	KindNotInfused          ErrorKind = "not_infused"
	KindNothingToClaim      ErrorKind = "nothing_to_claim"
	KindTransfer            ErrorKind = "transfer"
)

// Error is a rejected operation. Kind is stable and matched with errors.Is,
// Reason is the human readable cause.
type Error struct {
	Kind   ErrorKind
	Reason string
}

// Error implements error
func (e *Error) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return e.Reason
}

// Is matches another *Error by kind, and by reason when the target carries one
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// NewError creates a new kinded error
func NewError(kind ErrorKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// KindOf returns the kind of a domain error, or an empty kind when err is not one
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Kind sentinels, matched by errors.Is regardless of reason
var (
	ErrConfig              = &Error{Kind: KindConfig}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrAuthorization       = &Error{Kind: KindAuthorization}
	ErrProxyAuthorization  = &Error{Kind: KindProxyAuthorization}
	ErrNotOwner            = &Error{Kind: KindNotOwner}
	ErrInvalidCollection   = &Error{Kind: KindInvalidCollection}
	ErrInvalidToken        = &Error{Kind: KindInvalidToken}
	ErrOwnership           = &Error{Kind: KindOwnership}
	ErrAmountRange         = &Error{Kind: KindAmountRange}
	ErrAmountTooLow        = &Error{Kind: KindAmountTooLow}
	ErrCapacity            = &Error{Kind: KindCapacity}
	ErrMultiInfuseDisabled = &Error{Kind: KindMultiInfuseDisabled}
	ErrNotInfused          = &Error{Kind: KindNotInfused}
	ErrNothingToClaim      = &Error{Kind: KindNothingToClaim}
	ErrTransfer            = &Error{Kind: KindTransfer}
)

// Realm configuration errors
var (
	ErrInvalidTokenAddress   = NewError(KindConfig, "invalid token")
	ErrInvalidMaxAmount      = NewError(KindConfig, "invalid max amount")
	ErrInvalidMinMaxAmount   = NewError(KindConfig, "invalid min/max amount")
	ErrInvalidMaxBalance     = NewError(KindConfig, "invalid max token balance")
	ErrInvalidMinClaimAmount = NewError(KindConfig, "invalid min claim amount")
	ErrInvalidDailyRate      = NewError(KindConfig, "invalid daily rate")
	ErrInvalidAdmin          = NewError(KindConfig, "invalid admin")
	ErrInvalidInfuserAddress = NewError(KindConfig, "invalid infuser")
	ErrInvalidCollectionAddr = NewError(KindConfig, "invalid collection")
	ErrInvalidProxy          = NewError(KindConfig, "invalid proxy")
)

// Operation errors
var (
	ErrInvalidRealm         = NewError(KindNotFound, "invalid realm")
	ErrNotRealmAdmin        = NewError(KindAuthorization, "not realm admin")
	ErrInvalidInfuser       = NewError(KindAuthorization, "invalid infuser")
	ErrInvalidProxyInfusion = NewError(KindProxyAuthorization, "invalid proxy infusion")
	ErrCollectionNotAllowed = NewError(KindInvalidCollection, "invalid collection")
	ErrTokenDoesNotExist    = NewError(KindInvalidToken, "invalid token")
	ErrNftNotOwned          = NewError(KindOwnership, "nft not owned by infuser")
	ErrMultiInfuse          = NewError(KindMultiInfuseDisabled, "multi infuse disabled")
	ErrAmountBelowMin       = NewError(KindAmountRange, "amount too low")
	ErrAmountAboveMax       = NewError(KindAmountRange, "amount too high")
	ErrMaxTokenBalance      = NewError(KindCapacity, "max token balance")
	ErrTokenNotInfused      = NewError(KindNotInfused, "token not infused")
	ErrNotOwnerOrApproved   = NewError(KindNotOwner, "not owner or approved")
	ErrNothingClaimable     = NewError(KindNothingToClaim, "nothing to claim")
	ErrClaimBelowMin        = NewError(KindAmountTooLow, "amount too low")
)

// TransferError wraps a refused ledger transfer
func TransferError(err error) error {
	return fmt.Errorf("%w: %w", NewError(KindTransfer, "transfer failed"), err)
}
