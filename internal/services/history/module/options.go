package module

import (
	"time"

	"combatlog/internal/platform/config"
	"combatlog/internal/platform/store"
	"combatlog/internal/services/history/service"
)

// Options holds configuration settings for the history module
type Options struct {
	Dir         string
	NodeID      int64
	LogSQL      bool
	SlowMs      int
	BusyTimeout time.Duration
	Synchronous string
}

// FromConfig reads COMBATLOG_HISTORY_* from cfg
// cfg is the COMBATLOG_ prefix view
func FromConfig(cfg config.Conf) Options {
	hc := cfg.Prefix("HISTORY_")
	return Options{
		Dir:         hc.MayPath("DIR", config.HistoryDir()),
		NodeID:      hc.MayInt64("NODE_ID", 1),
		LogSQL:      hc.MayBool("LOG_SQL", false),
		SlowMs:      hc.MayInt("SLOW_MS", 250),
		BusyTimeout: time.Duration(hc.MayInt("BUSY_TIMEOUT_MS", 5000)) * time.Millisecond,
		Synchronous: hc.MayEnum("SYNC", "FULL", "OFF", "NORMAL", "FULL"),
	}
}

// Engine returns the engine config for these options
func (o Options) Engine() service.Config {
	return service.Config{
		Root:        o.Dir,
		NodeID:      o.NodeID,
		LogSQL:      o.LogSQL,
		SlowMs:      o.SlowMs,
		BusyTimeout: o.BusyTimeout,
		Synchronous: o.Synchronous,
	}
}

// Store returns the store config that opens the same database the engine would
func (o Options) Store() store.Config {
	return store.Config{
		AppName: "combatlog",
		SQLite: store.SQLiteConfig{
			Enabled:     true,
			Path:        service.DBPath(o.Dir),
			LogSQL:      o.LogSQL,
			SlowQueryMs: o.SlowMs,
			BusyTimeout: o.BusyTimeout,
			Synchronous: o.Synchronous,
		},
	}
}
