// Package databasetest opens migrated SQLite databases for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/corray333/backend-labs/crm/internal/dal/database"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a client for a fresh, fully migrated SQLite database
// that is closed when the test ends.
func NewSQLite(t testing.TB) *database.Client {
	t.Helper()

	client, err := database.NewClient(context.Background(), database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "crm.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Migrate())

	return client
}
