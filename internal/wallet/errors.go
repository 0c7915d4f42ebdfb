package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrKindMismatch        = errors.New("transaction kind does not match operation")
	ErrEmptyIdempotencyKey = errors.New("idempotency key must not be empty")
)

// InsufficientFundsError carries the exact amounts so callers can present
// them to the user.
type InsufficientFundsError struct {
	RequiredCents  int64
	AvailableCents int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %d, available %d", e.RequiredCents, e.AvailableCents)
}

// IntegrityError means the cached balance diverged from the balance
// recomputed from the transaction log. This indicates a prior bug, never a
// recoverable user-facing condition; the ledger refuses further mutations
// once it is detected.
type IntegrityError struct {
	CachedCents  int64
	DerivedCents int64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("ledger integrity violation: cached balance %d, derived %d", e.CachedCents, e.DerivedCents)
}
