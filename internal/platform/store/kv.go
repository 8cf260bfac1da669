package store

import (
	"context"

	perr "combatlog/internal/platform/errors"
)

// Pair is one key and value read from a tree
type Pair struct {
	Key   []byte
	Value []byte
}

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	tree TEXT NOT NULL,
	k    BLOB NOT NULL,
	v    BLOB NOT NULL,
	PRIMARY KEY (tree, k)
) WITHOUT ROWID`

// EnsureKV creates the ordered key value table when missing
func EnsureKV(ctx context.Context, q RowQuerier) error {
	if _, err := q.Exec(ctx, kvSchema); err != nil {
		return perr.FromSQLite(err, "create kv table")
	}
	return nil
}

// Get reads one value, ok is false when the key is absent
func Get(ctx context.Context, q RowQuerier, tree string, key []byte) ([]byte, bool, error) {
	v, err := One(ctx, q, scanValue, `SELECT v FROM kv WHERE tree = ? AND k = ?`, tree, nonNil(key))
	if perr.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, perr.FromSQLitef(err, "get %s", tree)
	}
	return v, true, nil
}

// Put inserts or replaces one value
func Put(ctx context.Context, q RowQuerier, tree string, key, value []byte) error {
	_, err := q.Exec(ctx,
		`INSERT INTO kv (tree, k, v) VALUES (?, ?, ?)
		 ON CONFLICT (tree, k) DO UPDATE SET v = excluded.v`,
		tree, nonNil(key), nonNil(value))
	return perr.FromSQLitef(err, "put %s", tree)
}

// Delete removes one key, ok is false when nothing was there
func Delete(ctx context.Context, q RowQuerier, tree string, key []byte) (bool, error) {
	err := ExecOne(ctx, q, `DELETE FROM kv WHERE tree = ? AND k = ?`, tree, nonNil(key))
	if perr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, perr.FromSQLitef(err, "delete %s", tree)
	}
	return true, nil
}

// Scan returns every pair in tree in ascending key order
func Scan(ctx context.Context, q RowQuerier, tree string) ([]Pair, error) {
	out, err := Many(ctx, q, scanPair, `SELECT k, v FROM kv WHERE tree = ? ORDER BY k`, tree)
	if err != nil {
		return nil, perr.FromSQLitef(err, "scan %s", tree)
	}
	return out, nil
}

// Count returns the number of keys in tree
func Count(ctx context.Context, q RowQuerier, tree string) (int64, error) {
	n, err := Scalar[int64](ctx, q, `SELECT COUNT(*) FROM kv WHERE tree = ?`, tree)
	if err != nil {
		return 0, perr.FromSQLitef(err, "count %s", tree)
	}
	return n, nil
}

func scanValue(r Row) ([]byte, error) {
	var v []byte
	if err := r.Scan(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func scanPair(r Row) (Pair, error) {
	var p Pair
	if err := r.Scan(&p.Key, &p.Value); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// nonNil keeps zero length blobs from binding as NULL
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
