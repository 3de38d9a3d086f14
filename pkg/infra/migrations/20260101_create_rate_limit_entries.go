package migrations

import (
	"github.com/NeuralTrust/TrustGuard/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260101_create_rate_limit_entries",
		Name: "Create rate limit entries table",
		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
CREATE TABLE IF NOT EXISTS public.rate_limit_entries (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT '',
    counter BIGINT NOT NULL DEFAULT 0,
    expires_at TIMESTAMPTZ NULL
);`).Error; err != nil {
				return err
			}
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_rate_limit_entries_expires_at
    ON public.rate_limit_entries (expires_at) WHERE expires_at IS NOT NULL;`).Error
		},
	})
}
