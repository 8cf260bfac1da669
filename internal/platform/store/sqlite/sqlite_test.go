package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPragmas(t *testing.T) {
	got := pragmas(Config{Path: "x.db", BusyTimeout: 2 * time.Second, Synchronous: "normal"})
	joined := strings.Join(got, " ")
	for _, want := range []string{"journal_mode=WAL", "busy_timeout=2000", "synchronous=NORMAL", "foreign_keys=ON"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("pragmas %q missing %q", joined, want)
		}
	}

	mem := strings.Join(pragmas(Config{Path: ":memory:", Synchronous: "bogus"}), " ")
	if strings.Contains(mem, "journal_mode") {
		t.Fatalf("memory db should not request WAL: %q", mem)
	}
	if !strings.Contains(mem, "synchronous=FULL") || !strings.Contains(mem, "busy_timeout=5000") {
		t.Fatalf("defaults not applied: %q", mem)
	}
}

func TestOpen_AppliesWAL(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Config{Path: filepath.Join(t.TempDir(), "a", "b.db")}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	var mode string
	if err := db.SQL.QueryRowContext(ctx, `PRAGMA journal_mode;`).Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if strings.ToLower(mode) != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), Config{}, nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCloseNil(t *testing.T) {
	var d *DB
	if err := d.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}

func TestTracer_LogsSlowAsWarn(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT\n\t1", Args: []any{1, 2}, ElapsedUS: 1500})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", ElapsedUS: 900000, Slow: true})

	out := buf.String()
	if !strings.Contains(out, `"sql":"SELECT 1"`) || !strings.Contains(out, `"args":2`) {
		t.Fatalf("compact sql or args missing: %q", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("slow query should log at warn: %q", out)
	}
}

func TestCompact(t *testing.T) {
	if got := compact("a \n\t b\r\nc"); got != "a b c" {
		t.Fatalf("compact = %q", got)
	}
}
