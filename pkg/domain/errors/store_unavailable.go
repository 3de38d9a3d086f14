package domain

import (
	"errors"
	"fmt"
)

var ErrStoreUnavailable *StoreUnavailableError

// StoreUnavailableError wraps any failure of the shared store: connection
// errors, timeouts and an open circuit breaker all end up here.
type StoreUnavailableError struct {
	Operation string
	Err       error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("rate limit store unavailable during %s: %v", e.Operation, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func (e *StoreUnavailableError) Is(target error) bool {
	_, ok := target.(*StoreUnavailableError)
	return ok
}

func NewStoreUnavailableError(operation string, err error) error {
	return &StoreUnavailableError{
		Operation: operation,
		Err:       err,
	}
}

func IsStoreUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var storeErr *StoreUnavailableError
	return errors.As(err, &storeErr)
}
