// Package logger wraps zerolog with process defaults and context scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"combatlog/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw config view so config can log without a cycle
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(rc.Get("LEVEL", "info")),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", "combatlog"),
		Component:   rc.Get("COMPONENT", ""),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Logger is the project wide logging type
type Logger = zerolog.Logger

// Get returns the process root logger, building it from env on first use
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init builds the root logger, only the first call has an effect
func Init(opt Options) {
	once.Do(func() {
		log := New(opt)
		root.Store(&log)
		inited.Store(true)
	})
}

// New builds a standalone logger from opt without touching the process root
// tests use it to capture output in a buffer
func New(opt Options) Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: opt.Writer != nil}
	}

	ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		ctx = ctx.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	if opt.Component != "" {
		ctx = ctx.Str("component", opt.Component)
	}
	for k, v := range opt.StaticFields {
		ctx = ctx.Str(k, v)
	}

	log := ctx.Logger()
	if opt.WithCaller {
		log = log.With().Caller().Logger()
	}
	if opt.SampleEvery > 1 {
		log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return log
}

// parseLevel maps a level name, unknown names fall back to info
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"req_id"}
	keySessionID = ctxKey{"session_id"}
)

// WithRequest annotates ctx with an http request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	return ctx
}

// WithSession annotates ctx with an ingest session id
func WithSession(ctx context.Context, sessionID string) context.Context {
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	return ctx
}

// C returns a child of the root logger enriched from ctx
func C(ctx context.Context) *Logger {
	builder := Get().With()
	if s, ok := ctx.Value(keyRequestID).(string); ok && s != "" {
		builder = builder.Str("request_id", s)
	}
	if s, ok := ctx.Value(keySessionID).(string); ok && s != "" {
		builder = builder.Str("session_id", s)
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
