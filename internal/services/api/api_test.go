package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"combatlog/internal/modkit"
	"combatlog/internal/modkit/module"
	"combatlog/internal/platform/config"
	phttp "combatlog/internal/platform/net/http"
	metamod "combatlog/internal/services/meta/module"

	"github.com/go-chi/chi/v5"
)

func TestStack_ReadsConfig(t *testing.T) {
	t.Setenv("COMBATLOG_API_CORS_ORIGINS", "http://localhost:5173, app://overlay")
	t.Setenv("COMBATLOG_API_SLOW_REQUEST", "250ms")

	got := Stack(config.New().Prefix("COMBATLOG_API_"))
	if len(got.CORSOrigins) != 2 || got.CORSOrigins[1] != "app://overlay" {
		t.Fatalf("origins got %v", got.CORSOrigins)
	}
	if got.SlowRequest != 250*time.Millisecond {
		t.Fatalf("slow got %v", got.SlowRequest)
	}
}

func TestMount_VersionedRoutesAndRegistry(t *testing.T) {
	module.Reset()
	t.Cleanup(module.Reset)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Config:  config.New().Prefix("COMBATLOG_API_TEST_"),
		Modules: []module.Module{metamod.New(modkit.Deps{}, nil)},
	})

	cases := []struct {
		path string
		want int
	}{
		{"/v1/meta/version", http.StatusOK},
		{"/v1/meta/health", http.StatusOK},
		{"/meta/version", http.StatusNotFound},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, c.path, nil))
		if rec.Code != c.want {
			t.Fatalf("%s status got %d want %d", c.path, rec.Code, c.want)
		}
	}

	names := module.Names()
	if len(names) != 1 || names[0] != "meta" {
		t.Fatalf("registry got %v", names)
	}
}
