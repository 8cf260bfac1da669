package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"combatlog/internal/modkit"
	modreg "combatlog/internal/modkit/module"
	"combatlog/internal/platform/config"
	phttp "combatlog/internal/platform/net/http"
	"combatlog/internal/platform/store/storetest"
	"combatlog/internal/services/history/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestFromConfig_Defaults(t *testing.T) {
	t.Setenv("COMBATLOG_CONFIG_DIR", "/tmp/cl")
	t.Setenv("COMBATLOG_HISTORY_DIR", "")
	t.Setenv("COMBATLOG_HISTORY_SYNC", "")

	o := FromConfig(config.New().Prefix("COMBATLOG_"))
	if o.Dir != "/tmp/cl/history" || o.NodeID != 1 || o.SlowMs != 250 {
		t.Fatalf("defaults got %+v", o)
	}
	if o.BusyTimeout != 5*time.Second || o.Synchronous != "FULL" || o.LogSQL {
		t.Fatalf("defaults got %+v", o)
	}
	if o.Store().SQLite.Path != "/tmp/cl/history/history.db" || o.Engine().Root != "/tmp/cl/history" {
		t.Fatalf("paths got %q %q", o.Store().SQLite.Path, o.Engine().Root)
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	t.Setenv("COMBATLOG_HISTORY_DIR", "/data/h")
	t.Setenv("COMBATLOG_HISTORY_NODE_ID", "7")
	t.Setenv("COMBATLOG_HISTORY_LOG_SQL", "true")
	t.Setenv("COMBATLOG_HISTORY_SYNC", "NORMAL")
	t.Setenv("COMBATLOG_HISTORY_BUSY_TIMEOUT_MS", "100")

	o := FromConfig(config.New().Prefix("COMBATLOG_"))
	if o.Dir != "/data/h" || o.NodeID != 7 || !o.LogSQL || o.Synchronous != "NORMAL" {
		t.Fatalf("overrides got %+v", o)
	}
	if o.BusyTimeout != 100*time.Millisecond {
		t.Fatalf("durations got %+v", o)
	}
}

func TestModule_WiresRecorderAndRoutes(t *testing.T) {
	modreg.Reset()
	t.Cleanup(modreg.Reset)

	ctx := context.Background()
	st := storetest.Open(t)
	m, err := New(ctx, modkit.Deps{Log: zerolog.Nop(), Cfg: config.New().Prefix("COMBATLOG_"), KV: st.KV})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ports, ok := modreg.PortsAs[Ports]("history")
	if !ok || ports.Recorder == nil || ports.Query == nil || ports.Admin == nil {
		t.Fatalf("registry ports got %+v ok=%v", ports, ok)
	}
	q := modreg.MustPortsOf[domain.QueryPort](m)

	ports.Recorder.RecordComponents(
		domain.EncounterSummary{Title: "Doma Castle", Duration: "00:30", Damage: "900", IsActive: true},
		[]domain.CombatantRow{{Name: "Alpha", Job: "WAR", Damage: 900}},
		[]byte(`{"type":"CombatData"}`),
	)

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/history/flush", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("flush got %d", rec.Code)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := m.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	dates, err := q.Dates(ctx)
	if err != nil || len(dates) != 1 || dates[0].EncounterCount != 1 {
		t.Fatalf("dates got %+v err=%v", dates, err)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history/dates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("dates route got %d", rec.Code)
	}
}
