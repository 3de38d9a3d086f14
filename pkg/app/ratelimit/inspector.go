package ratelimit

import (
	"context"
	"strconv"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

// Inspector reads a subject's limiter state without changing it.
type Inspector interface {
	Status(ctx context.Context, category domain.Category, subject domain.Subject) (*domain.SubjectStatus, error)
}

type inspector struct {
	registry   Registry
	store      domain.Store
	blocks     BlockTracker
	violations ViolationTracker
	keys       *KeyBuilder
	now        func() time.Time
}

func NewInspector(
	registry Registry,
	store domain.Store,
	blocks BlockTracker,
	violations ViolationTracker,
	keys *KeyBuilder,
	now func() time.Time,
) Inspector {
	if now == nil {
		now = time.Now
	}
	return &inspector{
		registry:   registry,
		store:      store,
		blocks:     blocks,
		violations: violations,
		keys:       keys,
		now:        now,
	}
}

func (i *inspector) Status(
	ctx context.Context,
	category domain.Category,
	subject domain.Subject,
) (*domain.SubjectStatus, error) {
	policy, err := i.registry.Get(category)
	if err != nil {
		return nil, err
	}
	index := policy.WindowIndex(i.now())

	status := &domain.SubjectStatus{
		Category:      category,
		Subject:       i.keys.HashSubject(subject),
		Limit:         policy.MaxRequests,
		WindowResetAt: policy.WindowStart(index + 1),
	}

	entry, err := i.store.GetWithTTL(ctx, i.keys.Counter(category, subject, index))
	if err != nil {
		return nil, asStoreError("status_counter", err)
	}
	if entry != nil {
		if count, err := strconv.ParseUint(entry.Value, 10, 64); err == nil {
			status.CurrentCount = count
		}
	}

	if status.ViolationCount, err = i.violations.Count(ctx, category, subject); err != nil {
		return nil, asStoreError("status_violations", err)
	}
	if status.Block, err = i.blocks.IsBlocked(ctx, category, subject); err != nil {
		return nil, asStoreError("status_block", err)
	}
	return status, nil
}
