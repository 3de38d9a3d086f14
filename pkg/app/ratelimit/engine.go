package ratelimit

import (
	"context"
	"fmt"
	"time"

	domainerrors "github.com/NeuralTrust/TrustGuard/pkg/domain/errors"
	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/auditlogs"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	OutcomeAllowed  = "allowed"
	OutcomeDenied   = "denied"
	OutcomeBlocked  = "blocked"
	OutcomeFailOpen = "fail_open"
)

// Engine is the single entry point request handlers call before running a
// protected operation.
type Engine interface {
	// Check returns an error only for configuration faults. Store failures
	// are absorbed and reported as an allowed, failed-open result.
	//
	// A failure after the window counter was incremented leaves that
	// increment (and any violation already recorded) in place; the failed-open
	// decision itself writes nothing further.
	Check(ctx context.Context, category domain.Category, req domain.Request) (*domain.Result, error)
}

type EngineDeps struct {
	Logger     *logrus.Logger
	Registry   Registry
	Resolver   Resolver
	Blocks     BlockTracker
	Violations ViolationTracker
	Store      domain.Store
	Keys       *KeyBuilder
	Audit      auditlogs.Service
	Now        func() time.Time
}

type engine struct {
	logger     *logrus.Logger
	registry   Registry
	resolver   Resolver
	blocks     BlockTracker
	violations ViolationTracker
	store      domain.Store
	keys       *KeyBuilder
	audit      auditlogs.Service
	now        func() time.Time
}

func NewEngine(deps EngineDeps) Engine {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &engine{
		logger:     deps.Logger,
		registry:   deps.Registry,
		resolver:   deps.Resolver,
		blocks:     deps.Blocks,
		violations: deps.Violations,
		store:      deps.Store,
		keys:       deps.Keys,
		audit:      deps.Audit,
		now:        now,
	}
}

func (e *engine) Check(ctx context.Context, category domain.Category, req domain.Request) (*domain.Result, error) {
	policy, err := e.registry.Get(category)
	if err != nil {
		return nil, err
	}
	subject := e.resolver.Resolve(category, req)

	result, outcome, err := e.decide(ctx, policy, subject)
	if err != nil {
		e.logger.WithError(err).WithFields(logrus.Fields{
			"category": category,
			"subject":  e.keys.HashSubject(subject),
		}).Error("rate limit store unavailable, failing open")
		prometheus.DecisionsTotal.WithLabelValues(string(category), OutcomeFailOpen).Inc()
		return &domain.Result{Allowed: true, Category: category, FailedOpen: true}, nil
	}

	prometheus.DecisionsTotal.WithLabelValues(string(category), outcome).Inc()
	return result, nil
}

func (e *engine) decide(
	ctx context.Context,
	policy domain.Policy,
	subject domain.Subject,
) (*domain.Result, string, error) {
	now := e.now()

	block, err := e.blocks.IsBlocked(ctx, policy.Category, subject)
	if err != nil {
		return nil, "", asStoreError("block_check", err)
	}
	if block != nil {
		// Blocked subjects never touch their window counter.
		until := block.BlockedUntil
		return &domain.Result{
			Allowed:           false,
			Category:          policy.Category,
			Limit:             policy.MaxRequests,
			WindowResetAt:     until,
			RetryAfterSeconds: block.RetryAfter(now),
			BlockedUntil:      &until,
		}, OutcomeBlocked, nil
	}

	index := policy.WindowIndex(now)
	key := e.keys.Counter(policy.Category, subject, index)
	count, err := e.store.IncrementWithTTL(ctx, key, policy.Window())
	if err != nil {
		return nil, "", asStoreError("increment", err)
	}
	if count < 0 {
		count = 0
	}

	result := &domain.Result{
		Category:      policy.Category,
		CurrentCount:  uint64(count),
		Limit:         policy.MaxRequests,
		WindowResetAt: policy.WindowStart(index + 1),
	}
	if uint64(count) <= uint64(policy.MaxRequests) {
		result.Allowed = true
		return result, OutcomeAllowed, nil
	}

	violations, err := e.violations.Increment(ctx, policy.Category, subject)
	if err != nil {
		return nil, "", asStoreError("violation_increment", err)
	}
	result.RetryAfterSeconds = policy.WindowSeconds

	if policy.BlockSeconds > 0 {
		duration := e.violations.BlockDuration(policy, violations)
		record, err := e.blocks.ApplyBlock(ctx, policy.Category, subject, duration, violations)
		if err != nil {
			return nil, "", asStoreError("apply_block", err)
		}
		until := record.BlockedUntil
		result.BlockedUntil = &until
		result.RetryAfterSeconds = uint(duration / time.Second)
		e.announceBlock(ctx, policy, subject, record, duration)
	}

	return result, OutcomeDenied, nil
}

func (e *engine) announceBlock(
	ctx context.Context,
	policy domain.Policy,
	subject domain.Subject,
	record *domain.BlockRecord,
	duration time.Duration,
) {
	hashed := e.keys.HashSubject(subject)
	prometheus.BlocksAppliedTotal.WithLabelValues(string(policy.Category)).Inc()

	first, err := e.blocks.MarkNotified(ctx, policy.Category, subject, duration)
	if err != nil {
		e.logger.WithError(err).WithField("category", policy.Category).Warn("failed to record block notice")
		return
	}
	if !first {
		return
	}

	e.logger.WithFields(logrus.Fields{
		"category":      policy.Category,
		"subject":       hashed,
		"violations":    record.ViolationCount,
		"blocked_until": record.BlockedUntil.UTC().Format(time.RFC3339),
	}).Warn("subject blocked")

	if e.audit == nil {
		return
	}
	e.audit.Emit(ctx, auditlogs.Event{
		Event: auditlogs.EventInfo{
			Type:     auditlogs.EventTypeSubjectBlocked,
			Category: auditlogs.CategoryAbuseProtection,
			Description: fmt.Sprintf(
				"%s quota exceeded, blocked for %s after %d violations",
				policy.Category, duration, record.ViolationCount,
			),
			Status: auditlogs.StatusSuccess,
		},
		Target: auditlogs.Target{
			Type: auditlogs.TargetTypeSubject,
			ID:   hashed,
			Name: string(policy.Category),
		},
	})
}

func asStoreError(operation string, err error) error {
	if domainerrors.IsStoreUnavailable(err) {
		return err
	}
	return domainerrors.NewStoreUnavailableError(operation, err)
}
