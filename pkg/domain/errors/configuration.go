package domain

import (
	"errors"
	"fmt"
)

var ErrConfiguration *ConfigurationError

// ConfigurationError is fatal: an unknown category or an invalid policy.
// It stops startup and is never converted into a fail-open decision.
type ConfigurationError struct {
	Category string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("rate limit configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("rate limit configuration error for category '%s': %s", e.Category, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

func NewConfigurationError(category string, reason string) error {
	return &ConfigurationError{
		Category: category,
		Reason:   reason,
	}
}

func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	var configurationError *ConfigurationError
	return errors.As(err, &configurationError)
}
