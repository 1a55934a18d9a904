package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store/drivers/sqlite"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store/storetest"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "taskflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, newStore)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newStore(t)
	u := storetest.SeedUser(t, s, "fk@example.com")
	b := storetest.SeedBusiness(t, s, u, "fk")

	_, err := s.(*sqlite.Store).DB().Exec(`INSERT INTO business_users (business_id, user_id, role, created_at) VALUES (?, 'ghost', 'member', CURRENT_TIMESTAMP)`, b.ID)
	require.Error(t, err)
}
