package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/logisales/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertScope(ctx context.Context, tx db.DBTX, scope string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO saved_settings (scope, commission_type, saved_at)
		VALUES (?, 'FLAT', '2025-01-01T00:00:00Z')`, scope)
	return err
}

func countScopes(t *testing.T, uow *db.SQLiteUnitOfWork) int {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_settings`).Scan(&n)
	})
	require.NoError(t, err)
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertScope(ctx, tx, "global"); err != nil {
			return err
		}
		return insertScope(ctx, tx, "E1")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countScopes(t, uow))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertScope(ctx, tx, "global"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countScopes(t, uow), "partial save rolled back")
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertScope(ctx, tx, "E1"); err != nil {
			return err
		}
		return insertScope(ctx, tx, "E1")
	})
	require.Error(t, err)
	assert.Equal(t, 0, countScopes(t, uow))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertScope(ctx, tx, "E2")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countScopes(t, uow), "row should not exist after panic rollback")
}
