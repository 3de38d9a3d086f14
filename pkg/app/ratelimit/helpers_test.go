package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/auditlogs"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/cache"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// windowAligned is divisible by 60, 900 and 3600.
var windowAligned = time.Unix(1_699_999_200, 0)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingAudit struct {
	mu     sync.Mutex
	events []auditlogs.Event
}

func (a *recordingAudit) Emit(_ context.Context, event auditlogs.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *recordingAudit) Close() error { return nil }

func (a *recordingAudit) Events() []auditlogs.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]auditlogs.Event(nil), a.events...)
}

type harness struct {
	clock      *testClock
	store      *cache.TTLMap
	keys       *KeyBuilder
	registry   Registry
	blocks     BlockTracker
	violations ViolationTracker
	audit      *recordingAudit
	engine     Engine
	clearer    Clearer
	inspector  Inspector
}

func newHarness(t *testing.T, opts *ViolationTrackerOpts, policies ...domain.Policy) *harness {
	t.Helper()
	table := make(map[domain.Category]domain.Policy, len(policies))
	for _, p := range policies {
		table[p.Category] = p
	}
	registry, err := NewRegistry(table)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	h := &harness{
		clock:    &testClock{now: windowAligned},
		keys:     NewKeyBuilder("test-secret"),
		registry: registry,
		audit:    &recordingAudit{},
	}
	h.store = cache.NewTTLMap(h.clock.Now)
	h.blocks = NewBlockTracker(h.store, h.keys, logger, h.clock.Now)
	h.violations = NewViolationTracker(h.store, h.keys, opts)
	h.engine = NewEngine(EngineDeps{
		Logger:     logger,
		Registry:   registry,
		Resolver:   NewResolver(DefaultIdentityScoped()),
		Blocks:     h.blocks,
		Violations: h.violations,
		Store:      h.store,
		Keys:       h.keys,
		Audit:      h.audit,
		Now:        h.clock.Now,
	})
	h.clearer = NewClearer(logger, registry, h.store, h.keys, h.clock.Now)
	h.inspector = NewInspector(registry, h.store, h.blocks, h.violations, h.keys, h.clock.Now)
	return h
}

func (h *harness) check(t *testing.T, category domain.Category, addr string) *domain.Result {
	t.Helper()
	result, err := h.engine.Check(context.Background(), category, domain.Request{NetworkAddress: addr})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func ipRequest(addr string) domain.Request {
	return domain.Request{NetworkAddress: addr}
}
