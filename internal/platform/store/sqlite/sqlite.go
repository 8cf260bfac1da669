// Package sqlite opens the embedded sqlite database behind the history store
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures the database handle
type Config struct {
	Path        string
	SlowMs      int
	BusyTimeout time.Duration
	Synchronous string
}

// DB is a sqlite handle with an optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer QueryTracer
	SlowMs int
}

var sqlOpen = sql.Open

// Open creates the parent directory, opens the file and applies pragmas
// the pool holds a single connection so per connection pragmas stick and writes serialize
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sqlOpen("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	for _, p := range pragmas(cfg) {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return &DB{SQL: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

func pragmas(cfg Config) []string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	sync := strings.ToUpper(strings.TrimSpace(cfg.Synchronous))
	switch sync {
	case "OFF", "NORMAL", "FULL", "EXTRA":
	default:
		sync = "FULL"
	}
	out := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d;", busy.Milliseconds()),
		"PRAGMA synchronous=" + sync + ";",
		"PRAGMA foreign_keys=ON;",
	}
	if cfg.Path != ":memory:" {
		out = append([]string{"PRAGMA journal_mode=WAL;"}, out...)
	}
	return out
}

// Close closes the handle
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
