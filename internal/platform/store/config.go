package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	SQLite SQLiteConfig
}

// SQLiteConfig configures the embedded history engine
type SQLiteConfig struct {
	Enabled     bool
	Path        string
	LogSQL      bool
	SlowQueryMs int

	// BusyTimeout bounds how long a writer waits on a locked database, default 5s
	BusyTimeout time.Duration
	// Synchronous is the sqlite synchronous pragma, default FULL
	Synchronous string
}
