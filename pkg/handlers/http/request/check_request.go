package request

import (
	"fmt"
	"strings"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/valyala/fastjson"
)

type CheckRequest struct {
	Category       string `json:"category"`
	UserID         string `json:"user_id,omitempty"`
	NetworkAddress string `json:"network_address,omitempty"`
}

// ParseCheckRequest decodes the check body. Fields of the wrong JSON type are
// treated as absent.
func ParseCheckRequest(body []byte) (*CheckRequest, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("invalid request body: expected a JSON object")
	}
	return &CheckRequest{
		Category:       string(v.GetStringBytes("category")),
		UserID:         string(v.GetStringBytes("user_id")),
		NetworkAddress: string(v.GetStringBytes("network_address")),
	}, nil
}

func (r *CheckRequest) Validate() error {
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	if !domain.Category(r.Category).IsKnown() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	return nil
}
