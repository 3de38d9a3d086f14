package ratelimit

import (
	"net"
	"strings"

	"github.com/NeuralTrust/TrustGuard/pkg/common"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

// Resolver picks the subject a request is throttled under. The same request
// always resolves to the same subject.
type Resolver interface {
	Resolve(category domain.Category, req domain.Request) domain.Subject
}

type resolver struct {
	identityScoped map[domain.Category]struct{}
}

// DefaultIdentityScoped are the categories throttled per account when the
// caller is authenticated.
func DefaultIdentityScoped() []domain.Category {
	return []domain.Category{domain.CategoryPasswordChange, domain.CategoryUpdate}
}

func NewResolver(identityScoped []domain.Category) Resolver {
	scoped := make(map[domain.Category]struct{}, len(identityScoped))
	for _, c := range identityScoped {
		scoped[c] = struct{}{}
	}
	return &resolver{identityScoped: scoped}
}

func (r *resolver) Resolve(category domain.Category, req domain.Request) domain.Subject {
	if _, ok := r.identityScoped[category]; ok {
		if userID := strings.TrimSpace(req.UserID); userID != "" {
			return domain.NewUserSubject(userID)
		}
	}
	return domain.NewIPSubject(NormalizeAddress(req.NetworkAddress))
}

// NormalizeAddress canonicalises an address so that textual variants of the
// same IP share a counter. Ports are dropped.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return common.UnknownAddress
	}
	if host, _, err := net.SplitHostPort(address); err == nil {
		address = host
	}
	if ip := net.ParseIP(strings.Trim(address, "[]")); ip != nil {
		return ip.String()
	}
	return strings.ToLower(address)
}
