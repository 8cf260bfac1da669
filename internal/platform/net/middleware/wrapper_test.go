package middleware_test

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"combatlog/internal/platform/logger"
	"combatlog/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWrappers_ReturnHandlers(t *testing.T) {
	if middleware.RequestID() == nil ||
		middleware.RealIP() == nil ||
		middleware.Timeout(time.Second) == nil ||
		middleware.NoCache() == nil ||
		middleware.Heartbeat("/healthz") == nil {
		t.Fatal("expected non nil handlers from wrappers")
	}
}

func TestHeartbeat(t *testing.T) {
	h := middleware.Heartbeat("/healthz")(http.NotFoundHandler())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat = %d", rr.Code)
	}
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
		logger.C(r.Context()).Debug().Msg("inside handler")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", seen)
	}
}

func TestCORS_DefaultsFillMissing(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"http://localhost:5173"}})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rr := httptest.NewRecorder()
	cors(h).ServeHTTP(rr, req)

	if rr.Code != 200 && rr.Code != 204 {
		t.Fatalf("expected 200 or 204 got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("expected Access-Control-Allow-Methods to be set")
	}
	if rr.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatal("expected Access-Control-Allow-Headers to be set")
	}
}

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "rid-p")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "rid-p" {
		t.Fatalf("request id header missing")
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if body["error"] != "panic recovered" || body["request_id"] != "rid-p" {
		t.Fatalf("body = %v", body)
	}
}

func TestDefaults_BundleRuns(t *testing.T) {
	chain := middleware.Defaults(middleware.AccessLogOptions{Slow: time.Second})
	if len(chain) == 0 {
		t.Fatal("expected some defaults")
	}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := chimw.GetReqID(r.Context()); rid == "" {
			t.Fatalf("expected request id in context from RequestID middleware")
		}
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err != nil || host == "" {
			if ip := net.ParseIP(r.RemoteAddr); ip == nil {
				t.Fatalf("expected RemoteAddr ip or host:port, got %q", r.RemoteAddr)
			}
		}
		w.WriteHeader(200)
	})

	var wrapped http.Handler = h
	for i := len(chain) - 1; i >= 0; i-- {
		wrapped = chain[i](wrapped)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("expected Cache-Control to be set by NoCache")
	}
}
