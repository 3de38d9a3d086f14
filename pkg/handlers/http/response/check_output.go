package response

import (
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

type CheckOutput struct {
	Allowed       bool      `json:"allowed"`
	Category      string    `json:"category"`
	CurrentCount  uint64    `json:"current_count"`
	Limit         uint      `json:"limit"`
	Remaining     uint64    `json:"remaining"`
	WindowResetAt time.Time `json:"window_reset_at"`
	FailedOpen    bool      `json:"failed_open,omitempty"`
}

func NewCheckOutput(result *domain.Result) CheckOutput {
	return CheckOutput{
		Allowed:       result.Allowed,
		Category:      string(result.Category),
		CurrentCount:  result.CurrentCount,
		Limit:         result.Limit,
		Remaining:     result.Remaining(),
		WindowResetAt: result.WindowResetAt,
		FailedOpen:    result.FailedOpen,
	}
}

type ListPoliciesOutput struct {
	Policies []domain.Policy `json:"policies"`
}

type ClearOutput struct {
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Cleared  bool   `json:"cleared"`
}
