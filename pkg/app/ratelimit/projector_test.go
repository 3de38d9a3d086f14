package ratelimit

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector_Headers_Allowed(t *testing.T) {
	p := NewProjector()
	reset := windowAligned.Add(time.Hour)

	headers := p.Headers(&domain.Result{
		Allowed:       true,
		Category:      domain.CategoryAPI,
		CurrentCount:  3,
		Limit:         5,
		WindowResetAt: reset,
	})

	assert.Equal(t, map[string]string{
		HeaderLimit:     "5",
		HeaderRemaining: "2",
		HeaderReset:     strconv.FormatInt(reset.Unix(), 10),
	}, headers)
}

func TestProjector_Headers_Denied(t *testing.T) {
	p := NewProjector()

	headers := p.Headers(&domain.Result{
		Allowed:           false,
		Category:          domain.CategoryLogin,
		CurrentCount:      9,
		Limit:             5,
		WindowResetAt:     windowAligned,
		RetryAfterSeconds: 900,
	})

	assert.Equal(t, "0", headers[HeaderRemaining])
	assert.Equal(t, "900", headers[HeaderRetryAfter])
}

func TestProjector_Headers_Blocked(t *testing.T) {
	h := newHarness(t, nil, loginPolicy)
	p := NewProjector()

	for i := 0; i < 6; i++ {
		h.check(t, domain.CategoryLogin, "1.2.3.4")
	}
	h.clock.Advance(100 * time.Second)
	blocked := h.check(t, domain.CategoryLogin, "1.2.3.4")
	require.False(t, blocked.Allowed)
	require.Zero(t, blocked.CurrentCount)

	headers := p.Headers(blocked)
	assert.Equal(t, "5", headers[HeaderLimit])
	assert.Equal(t, "0", headers[HeaderRemaining])
	assert.Equal(t, "800", headers[HeaderRetryAfter])
	assert.Equal(t, strconv.FormatInt(blocked.BlockedUntil.Unix(), 10), headers[HeaderReset])
}

func TestProjector_Headers_FailedOpen(t *testing.T) {
	p := NewProjector()

	assert.Empty(t, p.Headers(&domain.Result{Allowed: true, FailedOpen: true}))
	assert.Empty(t, p.Headers(nil))
}

func TestProjector_Deny(t *testing.T) {
	p := NewProjector()
	until := windowAligned.Add(15 * time.Minute)

	assert.Nil(t, p.Deny(&domain.Result{Allowed: true}))

	denial := p.Deny(&domain.Result{
		Allowed:           false,
		Category:          domain.CategoryLogin,
		Limit:             5,
		RetryAfterSeconds: 900,
		BlockedUntil:      &until,
	})
	require.NotNil(t, denial)
	assert.Equal(t, http.StatusTooManyRequests, denial.StatusCode)
	assert.Equal(t, domainerrors.RateLimitExceededKind, denial.Kind)
	assert.Equal(t, "login", denial.Category)
	assert.Equal(t, uint(900), denial.RetryAfterSeconds)
	assert.Equal(t, until.UTC().Format(time.RFC3339), denial.BlockedUntilISO())
	assert.ErrorIs(t, denial, domainerrors.ErrRateLimitExceeded)
}
