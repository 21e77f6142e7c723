package payments

import (
	"errors"
	"fmt"
)

// ValidationError rejects bad input before any state change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNotFound = errors.New("payment not found")

	// ErrInvalidState is the base for every status-guard rejection, so
	// callers can match the class with errors.Is.
	ErrInvalidState = errors.New("operation not allowed for current payment status")

	ErrAlreadyProcessed = fmt.Errorf("%w: payment has already been processed", ErrInvalidState)
	ErrAlreadyCancelled = fmt.Errorf("%w: payment is already cancelled", ErrInvalidState)
	ErrNotRefundable    = fmt.Errorf("%w: only completed payments can be refunded", ErrInvalidState)

	ErrAmountMismatch    = errors.New("payment amount does not match")
	ErrMissingPaymentKey = errors.New("payment key is missing, refund is not possible")
)
