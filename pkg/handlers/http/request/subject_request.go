package request

import (
	"fmt"
	"net/url"
	"strings"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

// SubjectRequest is read from the :category and :subject path parameters of
// the admin routes. Subjects use the "<kind>:<value>" form, e.g.
// "ip:203.0.113.5" or "user:42".
type SubjectRequest struct {
	Category domain.Category
	Subject  domain.Subject
}

func ParseSubjectRequest(rawCategory, rawSubject string) (*SubjectRequest, error) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(rawCategory)))
	if !category.IsKnown() {
		return nil, fmt.Errorf("unknown category %q", rawCategory)
	}
	unescaped, err := url.PathUnescape(rawSubject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject encoding: %w", err)
	}
	subject, err := domain.ParseSubject(unescaped)
	if err != nil {
		return nil, err
	}
	return &SubjectRequest{Category: category, Subject: subject}, nil
}
