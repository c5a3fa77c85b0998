package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/logisales/internal/db"
)

// FailOnNthExecUoW runs transactions through the real SQLite unit of work
// but makes the FailOn-th ExecContext (1-based) return Err. Reads do not
// count. Use it to break a multi-scope save half way.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

// execCounter is used by one transaction at a time, so a plain int does.
type execCounter struct {
	db.DBTX
	calls  int
	failOn int
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.calls++
	if c.calls == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
