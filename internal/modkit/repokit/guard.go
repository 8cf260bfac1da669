package repokit

import (
	"context"
	"time"

	perr "combatlog/internal/platform/errors"
)

const guardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// Guard checks st is reachable, bounded by a default deadline when ctx has none
func Guard(ctx context.Context, st guarder) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	return perr.WrapIf(st.Guard(ctx), perr.ErrorCodeUnavailable, "storage guard failed")
}

// MustGuard is Guard for process startup, it panics on any error
func MustGuard(ctx context.Context, st guarder) {
	if err := Guard(ctx, st); err != nil {
		panic(err)
	}
}
