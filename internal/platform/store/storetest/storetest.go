// Package storetest opens throwaway sqlite stores for tests
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"combatlog/internal/platform/store"
)

// Open returns a store backed by a fresh database under t.TempDir, closed on cleanup
func Open(t *testing.T) *store.Store {
	t.Helper()
	return OpenAt(t, filepath.Join(t.TempDir(), "history.db"))
}

// OpenAt opens a store at path, closed on cleanup
func OpenAt(t *testing.T, path string) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.Config{
		AppName: "combatlog-test",
		SQLite:  store.SQLiteConfig{Enabled: true, Path: path},
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}
