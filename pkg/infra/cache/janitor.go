package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Purger drops entries whose TTL has passed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// PurgeExpired implements Purger for the in-process store.
func (m *TTLMap) PurgeExpired(_ context.Context) (int64, error) {
	return int64(m.Sweep()), nil
}

// RunJanitor purges expired entries every interval until ctx is done.
func RunJanitor(ctx context.Context, purger Purger, interval time.Duration, logger *logrus.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.WithError(err).Warn("failed to purge expired rate limit entries")
				continue
			}
			if removed > 0 {
				logger.WithField("removed", removed).Debug("purged expired rate limit entries")
			}
		}
	}
}
