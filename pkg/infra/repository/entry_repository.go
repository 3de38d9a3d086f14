package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	domain "github.com/NeuralTrust/TrustGuard/pkg/domain/ratelimit"
	"github.com/NeuralTrust/TrustGuard/pkg/infra/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateLimitEntry is a row of public.rate_limit_entries. Counter keys keep
// their value in Counter; other keys keep it in Value.
type RateLimitEntry struct {
	Key       string     `gorm:"column:key;primaryKey"`
	Value     string     `gorm:"column:value"`
	Counter   int64      `gorm:"column:counter"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
}

func (RateLimitEntry) TableName() string {
	return "public.rate_limit_entries"
}

const incrementSQL = `
INSERT INTO public.rate_limit_entries AS e (key, value, counter, expires_at)
VALUES (@key, '', 1, @expires_at)
ON CONFLICT (key) DO UPDATE SET
    counter = CASE
        WHEN e.expires_at IS NOT NULL AND e.expires_at <= @now THEN 1
        ELSE e.counter + 1
    END,
    value = '',
    expires_at = EXCLUDED.expires_at
RETURNING counter`

const putIfAbsentSQL = `
INSERT INTO public.rate_limit_entries AS e (key, value, counter, expires_at)
VALUES (@key, @value, 0, @expires_at)
ON CONFLICT (key) DO UPDATE SET
    value = EXCLUDED.value,
    counter = 0,
    expires_at = EXCLUDED.expires_at
WHERE e.expires_at IS NOT NULL AND e.expires_at <= @now`

type EntryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ domain.Store = (*EntryRepository)(nil)

func NewEntryRepository(db *gorm.DB, now func() time.Time) *EntryRepository {
	if now == nil {
		now = time.Now
	}
	return &EntryRepository{db: db, now: now}
}

func expiresAt(now time.Time, ttl time.Duration) *time.Time {
	if ttl <= 0 {
		return nil
	}
	t := now.Add(ttl).UTC()
	return &t
}

func (r *EntryRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	now := r.now().UTC()
	var counter int64
	err := r.db.WithContext(ctx).Raw(incrementSQL, map[string]interface{}{
		"key":        key,
		"expires_at": expiresAt(now, ttl),
		"now":        now,
	}).Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}

func (r *EntryRepository) GetWithTTL(ctx context.Context, key string) (*domain.Entry, error) {
	now := r.now().UTC()
	var row RateLimitEntry
	err := r.db.WithContext(ctx).
		Where("key = ? AND (expires_at IS NULL OR expires_at > ?)", key, now).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entry := &domain.Entry{Value: row.Value}
	if entry.Value == "" {
		entry.Value = strconv.FormatInt(row.Counter, 10)
	}
	if row.ExpiresAt != nil {
		entry.TTL = row.ExpiresAt.Sub(now)
	}
	return entry, nil
}

func (r *EntryRepository) PutIfAbsentWithTTL(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	now := r.now().UTC()
	result := r.db.WithContext(ctx).Exec(putIfAbsentSQL, map[string]interface{}{
		"key":        key,
		"value":      value,
		"expires_at": expiresAt(now, ttl),
		"now":        now,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *EntryRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	row := &RateLimitEntry{
		Key:       key,
		Value:     value,
		ExpiresAt: expiresAt(r.now().UTC(), ttl),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "counter", "expires_at"}),
	}).Create(row).Error
}

func (r *EntryRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("DELETE FROM public.rate_limit_entries WHERE key = ANY(?)", types.StringArray(keys)).
		Error
}

// PurgeExpired removes rows whose TTL has passed.
func (r *EntryRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", r.now().UTC()).
		Delete(&RateLimitEntry{})
	return result.RowsAffected, result.Error
}
