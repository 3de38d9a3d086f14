package ratelimit

import (
	"sort"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

// Registry maps each category to its policy. It is filled once at startup
// and only read afterwards, so it needs no locking.
type Registry interface {
	Get(category domain.Category) (domain.Policy, error)
	All() []domain.Policy
}

type registry struct {
	policies map[domain.Category]domain.Policy
}

func NewRegistry(policies map[domain.Category]domain.Policy) (Registry, error) {
	if len(policies) == 0 {
		return nil, domainerrors.NewConfigurationError("", "at least one policy is required")
	}
	r := &registry{policies: make(map[domain.Category]domain.Policy, len(policies))}
	for category, policy := range policies {
		if !category.IsKnown() {
			return nil, domainerrors.NewConfigurationError(string(category), "unknown category")
		}
		if policy.Category == "" {
			policy.Category = category
		}
		if policy.Category != category {
			return nil, domainerrors.NewConfigurationError(string(category), "policy category does not match its key")
		}
		if err := policy.Validate(); err != nil {
			return nil, err
		}
		r.policies[category] = policy
	}
	return r, nil
}

func (r *registry) Get(category domain.Category) (domain.Policy, error) {
	policy, ok := r.policies[category]
	if !ok {
		return domain.Policy{}, domainerrors.NewConfigurationError(string(category), "category is not registered")
	}
	return policy, nil
}

func (r *registry) All() []domain.Policy {
	out := make([]domain.Policy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// DefaultPolicies is the built-in table used when configuration does not
// override a category.
func DefaultPolicies() map[domain.Category]domain.Policy {
	return map[domain.Category]domain.Policy{
		domain.CategoryLogin: {
			Category: domain.CategoryLogin, MaxRequests: 5, WindowSeconds: 900, BlockSeconds: 900, Progressive: true,
		},
		domain.CategoryPasswordReset: {
			Category: domain.CategoryPasswordReset, MaxRequests: 3, WindowSeconds: 3600, BlockSeconds: 3600, Progressive: true,
		},
		domain.CategoryPasswordChange: {
			Category: domain.CategoryPasswordChange, MaxRequests: 5, WindowSeconds: 3600, BlockSeconds: 1800, Progressive: true,
		},
		domain.CategoryAPI: {
			Category: domain.CategoryAPI, MaxRequests: 1000, WindowSeconds: 3600,
		},
		domain.CategoryCreate: {
			Category: domain.CategoryCreate, MaxRequests: 100, WindowSeconds: 3600,
		},
		domain.CategoryUpdate: {
			Category: domain.CategoryUpdate, MaxRequests: 200, WindowSeconds: 3600,
		},
		domain.CategoryEmailVerification: {
			Category: domain.CategoryEmailVerification, MaxRequests: 5, WindowSeconds: 3600, BlockSeconds: 3600,
		},
		domain.CategorySearch: {
			Category: domain.CategorySearch, MaxRequests: 300, WindowSeconds: 60,
		},
	}
}
