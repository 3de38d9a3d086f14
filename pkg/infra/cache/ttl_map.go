package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
)

// TTLEntry represents an entry in TTLMap
type TTLEntry struct {
	Value     string
	ExpiresAt time.Time
}

func (e *TTLEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// TTLMap is an in-process counter store with a TTL on each entry. It backs
// single-instance deployments and tests.
type TTLMap struct {
	Data map[string]*TTLEntry
	Mu   sync.Mutex
	now  func() time.Time
}

var _ domain.Store = (*TTLMap)(nil)

// NewTTLMap creates an empty TTLMap. A nil clock defaults to time.Now.
func NewTTLMap(now func() time.Time) *TTLMap {
	if now == nil {
		now = time.Now
	}
	return &TTLMap{
		Data: make(map[string]*TTLEntry),
		now:  now,
	}
}

func (m *TTLMap) expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// live returns the entry for key, dropping it if it has expired. Callers hold Mu.
func (m *TTLMap) live(key string, now time.Time) *TTLEntry {
	entry, ok := m.Data[key]
	if !ok {
		return nil
	}
	if entry.expired(now) {
		delete(m.Data, key)
		return nil
	}
	return entry
}

func (m *TTLMap) IncrementWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	now := m.now()
	var current int64
	if entry := m.live(key, now); entry != nil {
		// A non-numeric value restarts the counter.
		if v, err := strconv.ParseInt(entry.Value, 10, 64); err == nil {
			current = v
		}
	}
	current++
	m.Data[key] = &TTLEntry{Value: formatCounter(current), ExpiresAt: m.expiry(now, ttl)}
	return current, nil
}

func (m *TTLMap) GetWithTTL(_ context.Context, key string) (*domain.Entry, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	now := m.now()
	entry := m.live(key, now)
	if entry == nil {
		return nil, nil
	}
	out := &domain.Entry{Value: entry.Value}
	if !entry.ExpiresAt.IsZero() {
		out.TTL = entry.ExpiresAt.Sub(now)
	}
	return out, nil
}

func (m *TTLMap) PutIfAbsentWithTTL(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	now := m.now()
	if m.live(key, now) != nil {
		return false, nil
	}
	m.Data[key] = &TTLEntry{Value: value, ExpiresAt: m.expiry(now, ttl)}
	return true, nil
}

func (m *TTLMap) Put(_ context.Context, key, value string, ttl time.Duration) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	m.Data[key] = &TTLEntry{Value: value, ExpiresAt: m.expiry(m.now(), ttl)}
	return nil
}

func (m *TTLMap) Delete(_ context.Context, keys ...string) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	for _, key := range keys {
		delete(m.Data, key)
	}
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *TTLMap) Sweep() int {
	m.Mu.Lock()
	defer m.Mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.Data {
		if entry.expired(now) {
			delete(m.Data, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (m *TTLMap) Len() int {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return len(m.Data)
}

// Clear removes all entries from the TTLMap
func (m *TTLMap) Clear() {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Data = make(map[string]*TTLEntry)
}
