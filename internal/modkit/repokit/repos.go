// Package repokit binds repositories to the kv store seam
package repokit

import (
	"context"

	"combatlog/internal/platform/store"
)

// Queryer is the minimal read and write surface for repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// BindTx runs fn inside one transaction with a repo bound to the tx Queryer
// any error from fn rolls back every write fn made through the repo
func BindTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(repo T) error) error {
	return tx.Tx(ctx, func(q Queryer) error {
		return fn(MustBind(b, q))
	})
}
