// Command combatlog-recorder records overlay encounters into the local history store
// and serves the read API
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"combatlog/internal/adapters/ingest/overlay"
	"combatlog/internal/core/version"
	"combatlog/internal/modkit"
	"combatlog/internal/modkit/module"
	"combatlog/internal/modkit/repokit"
	"combatlog/internal/platform/config"
	"combatlog/internal/platform/logger"
	phttp "combatlog/internal/platform/net/http"
	"combatlog/internal/platform/store"
	"combatlog/internal/platform/trace"

	"combatlog/internal/services/api"
	historymod "combatlog/internal/services/history/module"
	metamod "combatlog/internal/services/meta/module"
)

const shutdownTimeout = 10 * time.Second

func main() {
	root := config.New().Prefix("COMBATLOG_")
	apiCfg := root.Prefix("API_")

	l := logger.Get()
	info := version.Info()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTrace, err := trace.Init(ctx, trace.Config{
		ServiceName:    info.Service,
		ServiceVersion: info.Version,
		UseStdout:      root.MayBool("TRACE_STDOUT", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("trace init failed")
	}
	defer func() { _ = shutdownTrace(context.Background()) }()

	hopts := historymod.FromConfig(root)
	st, err := store.Open(ctx, hopts.Store(), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{Cfg: root, Log: *l, KV: st.KV}

	hist, err := historymod.New(ctx, deps)
	if err != nil {
		l.Panic().Err(err).Msg("history module failed")
	}
	rec := module.MustPortsOf[historymod.Ports](hist).Recorder

	client := overlay.New(overlay.FromConfig(root), rec, *l)
	go func() {
		if err := client.Run(ctx); err != nil {
			l.Error().Err(err).Msg("overlay client stopped")
		}
	}()

	if apiCfg.MayBool("ENABLED", true) {
		srv := phttp.NewServer(apiCfg)
		api.Mount(srv.Router(), api.Options{
			Config: apiCfg,
			Modules: []module.Module{
				metamod.New(deps, client.Connected),
				hist,
			},
		})
		go func() {
			if err := srv.Run(ctx); err != nil {
				l.Error().Err(err).Msg("http server stopped")
				stop()
			}
		}()
	}

	l.Info().Str("version", info.Version).Str("dir", hopts.Dir).Msg("recorder running")
	<-ctx.Done()
	l.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hist.Shutdown(sctx); err != nil {
		l.Error().Err(err).Msg("recorder shutdown incomplete")
	}
	stats := client.Stats()
	l.Info().Uint64("sessions", stats.Sessions).Uint64("snapshots", stats.Snapshots).Msg("recorder stopped")
}
