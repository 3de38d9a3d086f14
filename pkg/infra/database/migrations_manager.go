package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is a forward-only schema step. IDs sort chronologically.
type Migration struct {
	ID   string
	Name string
	Up   func(tx *gorm.DB) error
}

type migrationSet struct {
	byID map[string]Migration
}

func (s *migrationSet) register(m Migration) error {
	if m.ID == "" || m.Up == nil {
		return fmt.Errorf("migration %q needs an id and an Up step", m.ID)
	}
	if _, exists := s.byID[m.ID]; exists {
		return fmt.Errorf("migration with ID %s already registered", m.ID)
	}
	s.byID[m.ID] = m
	return nil
}

// pending returns the migrations missing from applied, oldest first.
func (s *migrationSet) pending(applied map[string]struct{}) []Migration {
	out := make([]Migration, 0, len(s.byID))
	for id, m := range s.byID {
		if _, ok := applied[id]; !ok {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var registered = &migrationSet{byID: make(map[string]Migration)}

// RegisterMigration is called from migration package init functions.
func RegisterMigration(m Migration) {
	if err := registered.register(m); err != nil {
		panic(err)
	}
}

type MigrationsManager struct {
	db  *gorm.DB
	set *migrationSet
	now func() time.Time
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db, set: registered, now: time.Now}
}

func (m *MigrationsManager) ensureVersionTable(db *gorm.DB) error {
	return db.Exec(`
CREATE TABLE IF NOT EXISTS public.trustguard_schema_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`).Error
}

func (m *MigrationsManager) applied(db *gorm.DB) (map[string]struct{}, error) {
	var ids []string
	if err := db.Raw("SELECT id FROM public.trustguard_schema_version").Scan(&ids).Error; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// ApplyPending runs every unapplied migration in its own transaction, so a
// failed step leaves neither its schema change nor its version row behind.
func (m *MigrationsManager) ApplyPending(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	if err := m.ensureVersionTable(db); err != nil {
		return fmt.Errorf("ensure schema version table: %w", err)
	}
	applied, err := m.applied(db)
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	for _, mig := range m.set.pending(applied) {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO public.trustguard_schema_version (id, name, applied_at) VALUES (?, ?, ?)",
				mig.ID, mig.Name, m.now().UTC(),
			).Error
		})
		if err != nil {
			return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
	}
	return nil
}
