package ratelimit

import (
	"context"
	"strconv"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

const (
	DefaultPenaltyCap   = 10
	DefaultViolationTTL = 24 * time.Hour
)

// ViolationTracker keeps the repeat-offender history used to escalate
// blocks. The history outlives quota windows but decays after a quiet
// period of ViolationTTL.
type ViolationTracker interface {
	Count(ctx context.Context, category domain.Category, subject domain.Subject) (uint, error)
	Increment(ctx context.Context, category domain.Category, subject domain.Subject) (uint, error)
	BlockDuration(policy domain.Policy, violations uint) time.Duration
}

type ViolationTrackerOpts struct {
	PenaltyCap uint
	TTL        time.Duration
}

type violationTracker struct {
	store      domain.Store
	keys       *KeyBuilder
	penaltyCap uint
	ttl        time.Duration
}

func NewViolationTracker(store domain.Store, keys *KeyBuilder, opts *ViolationTrackerOpts) ViolationTracker {
	t := &violationTracker{
		store:      store,
		keys:       keys,
		penaltyCap: DefaultPenaltyCap,
		ttl:        DefaultViolationTTL,
	}
	if opts != nil && opts.PenaltyCap > 0 {
		t.penaltyCap = opts.PenaltyCap
	}
	if opts != nil && opts.TTL > 0 {
		t.ttl = opts.TTL
	}
	return t
}

func (t *violationTracker) Count(ctx context.Context, category domain.Category, subject domain.Subject) (uint, error) {
	entry, err := t.store.GetWithTTL(ctx, t.keys.Violations(category, subject))
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	count, err := strconv.ParseUint(entry.Value, 10, 64)
	if err != nil {
		return 0, nil
	}
	return uint(count), nil
}

// Increment refreshes the TTL on every call, so the decay window slides.
func (t *violationTracker) Increment(ctx context.Context, category domain.Category, subject domain.Subject) (uint, error) {
	count, err := t.store.IncrementWithTTL(ctx, t.keys.Violations(category, subject), t.ttl)
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, nil
	}
	return uint(count), nil
}

// BlockDuration is block_seconds for flat policies and
// block_seconds * min(violations, cap) for progressive ones.
func (t *violationTracker) BlockDuration(policy domain.Policy, violations uint) time.Duration {
	if !policy.Progressive {
		return policy.Block()
	}
	multiplier := violations
	if multiplier < 1 {
		multiplier = 1
	}
	if multiplier > t.penaltyCap {
		multiplier = t.penaltyCap
	}
	return policy.Block() * time.Duration(multiplier)
}
