package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/logisales/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory save store that lives as long as t.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening in-memory save store")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW wraps conn in the production unit of work.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
