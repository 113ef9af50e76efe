package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-infusion/internal/domain"
	"github.com/feral-file/ff-infusion/internal/engine"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	// Kind is the domain error kind of a rejected operation
	Kind domain.ErrorKind `json:"kind,omitempty"`
	// Item is the index of the failing item of a batch request
	Item *int `json:"item,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromDomain maps a rejected engine operation to its HTTP status and body.
// ok is false for errors that are not domain errors.
func FromDomain(err error) (status int, apiErr *APIError, ok bool) {
	kind := domain.KindOf(err)
	if kind == "" {
		return 0, nil, false
	}

	var e *domain.Error
	message := string(kind)
	if errors.As(err, &e) && e.Reason != "" {
		message = e.Reason
	}

	switch kind {
	case domain.KindConfig, domain.KindInvalidToken, domain.KindAmountRange, domain.KindAmountTooLow:
		status, apiErr = http.StatusBadRequest, NewBadRequestError(message)
	case domain.KindNotFound, domain.KindNotInfused:
		status, apiErr = http.StatusNotFound, NewNotFoundError(message)
	case domain.KindAuthorization, domain.KindProxyAuthorization, domain.KindNotOwner, domain.KindOwnership, domain.KindInvalidCollection:
		status, apiErr = http.StatusForbidden, NewForbiddenError(message)
	case domain.KindCapacity, domain.KindMultiInfuseDisabled, domain.KindNothingToClaim, domain.KindTransfer:
		status, apiErr = http.StatusConflict, &APIError{Code: ErrCodeConflict, Message: message}
	default:
		status, apiErr = http.StatusBadRequest, NewBadRequestError(message)
	}
	apiErr.Kind = kind

	var ie *engine.ItemError
	if errors.As(err, &ie) {
		index := ie.Index
		apiErr.Item = &index
	}
	return status, apiErr, true
}
