package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"combatlog/internal/platform/store/sqlite"
)

// querier is the subset of *sql.DB and *sql.Tx the adapter drives
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlAdapter wraps sqlite.DB and implements RowQuerier + TxRunner
// it also emits query trace events when a tracer is configured on sqlite.DB
type sqlAdapter struct {
	d *sqlite.DB
}

func newSQLAdapter(d *sqlite.DB) *sqlAdapter { return &sqlAdapter{d: d} }

func (a *sqlAdapter) Ping(ctx context.Context) error {
	if a == nil || a.d == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.d.SQL.PingContext(ctx)
}

func (a *sqlAdapter) Close() error { return a.d.Close() }

func (a *sqlAdapter) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return execOn(ctx, a.d.SQL, a.emit, query, args)
}

func (a *sqlAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return queryOn(ctx, a.d.SQL, a.emit, query, args)
}

func (a *sqlAdapter) QueryRow(ctx context.Context, query string, args ...any) Row {
	return queryRowOn(ctx, a.d.SQL, a.emit, query, args)
}

// Tx runs fn inside a transaction, rolling back when fn fails
func (a *sqlAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := txQuerier{tx: tx, emit: a.emit}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// emit sends a query event to the configured tracer
func (a *sqlAdapter) emit(ctx context.Context, query string, args []any, start time.Time, err error) {
	if a == nil || a.d == nil || a.d.Tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := a.d.SlowMs > 0 && elapsedUS >= int64(a.d.SlowMs)*1000
	a.d.Tracer.OnQuery(ctx, sqlite.QueryEvent{
		SQL:       query,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}

type emitFunc func(ctx context.Context, query string, args []any, start time.Time, err error)

func execOn(ctx context.Context, q querier, emit emitFunc, query string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := q.ExecContext(ctx, query, args...)
	emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag{r: res}, nil
}

func queryOn(ctx context.Context, q querier, emit emitFunc, query string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := q.QueryContext(ctx, query, args...)
	emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func queryRowOn(ctx context.Context, q querier, emit emitFunc, query string, args []any) Row {
	start := time.Now()
	r := q.QueryRowContext(ctx, query, args...)
	// emit after Scan completes so the scan error is captured
	return row{
		r: r,
		after: func(scanErr error) {
			emit(ctx, query, args, start, scanErr)
		},
	}
}

// adapters for database/sql to our tiny Row/Rows/CommandTag

type row struct {
	r     *sql.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r *sql.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { _ = x.r.Close() }
func (x rows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// tag adapts sql.Result to CommandTag
type tag struct{ r sql.Result }

func (t tag) RowsAffected() int64 {
	if t.r == nil {
		return 0
	}
	n, err := t.r.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func (t tag) String() string { return fmt.Sprintf("OK %d", t.RowsAffected()) }

// txQuerier uses sql.Tx to satisfy RowQuerier inside a Tx
// it mirrors sqlAdapter emit behavior so statements inside transactions are also traced
type txQuerier struct {
	tx   *sql.Tx
	emit emitFunc
}

func (t txQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return execOn(ctx, t.tx, t.emit, query, args)
}

func (t txQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return queryOn(ctx, t.tx, t.emit, query, args)
}

func (t txQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return queryRowOn(ctx, t.tx, t.emit, query, args)
}
