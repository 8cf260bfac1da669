// Package api mounts the versioned read API over the service modules
package api

import (
	"time"

	"combatlog/internal/modkit/httpkit"
	"combatlog/internal/modkit/module"
	"combatlog/internal/platform/config"
	phttp "combatlog/internal/platform/net/http"
)

// Options are the API options
type Options struct {
	// Config is the COMBATLOG_API_ view
	Config  config.Conf
	Modules []module.Module
}

// Stack reads the middleware options from cfg
func Stack(cfg config.Conf) httpkit.StackOptions {
	return httpkit.StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
		SlowRequest: cfg.MayDuration("SLOW_REQUEST", time.Second),
	}
}

// Mount registers every module's ports and mounts its routes under /v1
func Mount(r phttp.Router, opt Options) {
	httpkit.MountAPIV1(r, httpkit.CommonStack(Stack(opt.Config)), func(api httpkit.Router) {
		for _, m := range opt.Modules {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
