package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/sirupsen/logrus"
)

type BlockTracker interface {
	IsBlocked(ctx context.Context, category domain.Category, subject domain.Subject) (*domain.BlockRecord, error)
	// ApplyBlock overwrites any existing block; the countdown restarts.
	ApplyBlock(
		ctx context.Context,
		category domain.Category,
		subject domain.Subject,
		duration time.Duration,
		violations uint,
	) (*domain.BlockRecord, error)
	// MarkNotified reports true only to the first caller for a given block,
	// so concurrent exceeders announce it once.
	MarkNotified(ctx context.Context, category domain.Category, subject domain.Subject, ttl time.Duration) (bool, error)
}

type blockTracker struct {
	store  domain.Store
	keys   *KeyBuilder
	now    func() time.Time
	logger *logrus.Logger
}

func NewBlockTracker(store domain.Store, keys *KeyBuilder, logger *logrus.Logger, now func() time.Time) BlockTracker {
	if now == nil {
		now = time.Now
	}
	return &blockTracker{
		store:  store,
		keys:   keys,
		now:    now,
		logger: logger,
	}
}

func (t *blockTracker) IsBlocked(
	ctx context.Context,
	category domain.Category,
	subject domain.Subject,
) (*domain.BlockRecord, error) {
	entry, err := t.store.GetWithTTL(ctx, t.keys.Block(category, subject))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	now := t.now()
	var record domain.BlockRecord
	if err := json.Unmarshal([]byte(entry.Value), &record); err != nil {
		// The store's TTL still tells us how long the block has left.
		t.logger.WithError(err).WithField("category", category).Warn("unreadable block record, using store ttl")
		record = domain.BlockRecord{BlockedUntil: now.Add(entry.TTL)}
	}
	if !record.ActiveAt(now) {
		return nil, nil
	}
	return &record, nil
}

func (t *blockTracker) ApplyBlock(
	ctx context.Context,
	category domain.Category,
	subject domain.Subject,
	duration time.Duration,
	violations uint,
) (*domain.BlockRecord, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("block duration must be positive, got %s", duration)
	}
	record := &domain.BlockRecord{
		BlockedUntil:   t.now().Add(duration),
		ViolationCount: violations,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	if err := t.store.Put(ctx, t.keys.Block(category, subject), string(data), duration); err != nil {
		return nil, err
	}
	return record, nil
}

func (t *blockTracker) MarkNotified(
	ctx context.Context,
	category domain.Category,
	subject domain.Subject,
	ttl time.Duration,
) (bool, error) {
	return t.store.PutIfAbsentWithTTL(ctx, t.keys.BlockNotice(category, subject), "1", ttl)
}
