package store

import (
	"context"

	perr "combatlog/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row
// zero rows is reported as not found so deletes can tell a miss apart
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		if n == 0 {
			return perr.ErrNotFound
		}
		return perr.Newf(perr.ErrorCodeStorage, "write touched %d rows, want 1", n)
	}
	return nil
}

// Scalar reads the first column of the first row into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (v T, err error) {
	err = q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// One maps exactly one row into T, no rows is not found
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var (
		out  T
		seen int
	)
	err := walk(ctx, q, scan, func(item T) bool {
		seen++
		out = item
		return seen < 2
	}, sql, args...)
	switch {
	case err != nil:
		return *new(T), err
	case seen == 0:
		return *new(T), perr.ErrNotFound
	case seen > 1:
		return *new(T), perr.New(perr.ErrorCodeStorage, "query returned more than one row")
	}
	return out, nil
}

// Many maps every row into T in query order
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	var out []T
	err := walk(ctx, q, scan, func(item T) bool {
		out = append(out, item)
		return true
	}, sql, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk scans rows in order until fn returns false or the rows run out
func walk[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), fn func(T) bool, sql string, args ...any) error {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	cur := rowCursor{rows}
	for rows.Next() {
		item, err := scan(cur)
		if err != nil {
			return err
		}
		if !fn(item) {
			return nil
		}
	}
	return rows.Err()
}

// rowCursor lets a scanner read the current Rows position as a Row
type rowCursor struct{ rows Rows }

func (c rowCursor) Scan(dest ...any) error { return c.rows.Scan(dest...) }
