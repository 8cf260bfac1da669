package modkit

import (
	"combatlog/internal/modkit/repokit"
	"combatlog/internal/platform/config"
	"combatlog/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// KV is the transactional sqlite seam, nil when storage is disabled
	KV repokit.TxRunner
}

// HasStore reports whether a storage seam was wired
func (d Deps) HasStore() bool { return d.KV != nil }
