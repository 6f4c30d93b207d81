package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit would take a wallet balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrDuplicateInProgress indicates a concurrent request with the same
// idempotency key is still executing; callers should retry shortly.
var ErrDuplicateInProgress = errors.New("duplicate request in progress")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Descriptor kinds persisted with failed idempotency records. The stored
// kind lets a replayed request surface the original failure instead of a
// generic conflict.
const (
	KindNotFound          = "NOT_FOUND"
	KindValidation        = "VALIDATION"
	KindDuplicate         = "DUPLICATE"
	KindInsufficientFunds = "INSUFFICIENT_FUNDS"
	KindForbidden         = "FORBIDDEN"
	KindInternal          = "INTERNAL"
)

// Describe reduces an error to a (kind, message) descriptor suitable for
// persisting alongside a failed idempotency record.
func Describe(err error) (kind string, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, ErrValidation):
		kind = KindValidation
	case errors.Is(err, ErrDuplicate):
		kind = KindDuplicate
	case errors.Is(err, ErrInsufficientFunds):
		kind = KindInsufficientFunds
	case errors.Is(err, ErrForbidden):
		kind = KindForbidden
	default:
		kind = KindInternal
	}
	return kind, err.Error()
}

// FromDescriptor reconstructs an error from a stored (kind, message)
// descriptor so that retries of a permanently failed request fail with the
// original error kind.
func FromDescriptor(kind string, message string) error {
	var sentinel error
	switch kind {
	case KindNotFound:
		sentinel = ErrNotFound
	case KindValidation:
		sentinel = ErrValidation
	case KindDuplicate:
		sentinel = ErrDuplicate
	case KindInsufficientFunds:
		sentinel = ErrInsufficientFunds
	case KindForbidden:
		sentinel = ErrForbidden
	default:
		sentinel = ErrInternal
	}
	return fmt.Errorf("%w: %s", sentinel, message)
}
