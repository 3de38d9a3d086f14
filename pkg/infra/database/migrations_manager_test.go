package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func noop(*gorm.DB) error { return nil }

func TestMigrationSet_PendingIsOrderedAndSkipsApplied(t *testing.T) {
	set := &migrationSet{byID: make(map[string]Migration)}
	require.NoError(t, set.register(Migration{ID: "20260301_c", Up: noop}))
	require.NoError(t, set.register(Migration{ID: "20260101_a", Up: noop}))
	require.NoError(t, set.register(Migration{ID: "20260201_b", Up: noop}))

	ids := func(ms []Migration) []string {
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}
	assert.Equal(t, []string{"20260101_a", "20260201_b", "20260301_c"}, ids(set.pending(nil)))
	assert.Equal(t, []string{"20260301_c"}, ids(set.pending(map[string]struct{}{
		"20260101_a": {},
		"20260201_b": {},
	})))
}

func TestMigrationSet_RejectsDuplicatesAndEmptySteps(t *testing.T) {
	set := &migrationSet{byID: make(map[string]Migration)}
	require.NoError(t, set.register(Migration{ID: "20260101_a", Up: noop}))

	assert.Error(t, set.register(Migration{ID: "20260101_a", Up: noop}))
	assert.Error(t, set.register(Migration{ID: "20260102_b"}))
	assert.Error(t, set.register(Migration{Up: noop}))
}

func TestRegisterMigration_AddsToGlobalSet(t *testing.T) {
	assert.NotPanics(t, func() {
		RegisterMigration(Migration{ID: "test_only_migration", Up: noop})
	})
	_, ok := registered.byID["test_only_migration"]
	assert.True(t, ok)
}
