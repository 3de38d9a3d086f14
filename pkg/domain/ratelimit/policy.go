package ratelimit

import (
	"time"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
)

// Policy is the quota attached to a category. It is immutable once the
// registry has been built.
type Policy struct {
	Category      Category `json:"category"`
	MaxRequests   uint     `json:"max_requests"`
	WindowSeconds uint     `json:"window_seconds"`
	BlockSeconds  uint     `json:"block_seconds"`
	Progressive   bool     `json:"progressive"`
}

func (p Policy) Validate() error {
	if p.Category == "" {
		return domainerrors.NewConfigurationError("", "category is required")
	}
	if p.MaxRequests < 1 {
		return domainerrors.NewConfigurationError(string(p.Category), "max_requests must be >= 1")
	}
	if p.WindowSeconds < 1 {
		return domainerrors.NewConfigurationError(string(p.Category), "window_seconds must be >= 1")
	}
	return nil
}

func (p Policy) Window() time.Duration {
	return time.Duration(p.WindowSeconds) * time.Second
}

func (p Policy) Block() time.Duration {
	return time.Duration(p.BlockSeconds) * time.Second
}

// WindowIndex returns floor(now / window) for the fixed window containing now.
func (p Policy) WindowIndex(now time.Time) int64 {
	return now.Unix() / int64(p.WindowSeconds)
}

// WindowStart returns the instant at which the given window begins.
func (p Policy) WindowStart(index int64) time.Time {
	return time.Unix(index*int64(p.WindowSeconds), 0)
}
