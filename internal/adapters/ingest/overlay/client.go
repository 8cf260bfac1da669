package overlay

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"combatlog/internal/core/combat"
	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/logger"
	"combatlog/internal/platform/trace"
	"combatlog/internal/services/history/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
)

// frames above this size are treated as a broken stream
const readLimit = 16 << 20

// Stats is a point in time copy of the client counters
type Stats struct {
	Messages  uint64 `json:"messages"`
	Snapshots uint64 `json:"snapshots"`
	Sessions  uint64 `json:"sessions"`
}

type call struct {
	Call   string   `json:"call"`
	Events []string `json:"events,omitempty"`
}

// Client keeps a websocket session to the overlay plugin open and feeds the recorder
type Client struct {
	cfg    Config
	rec    domain.RecorderPort
	log    logger.Logger
	dialer *websocket.Dialer

	connected atomic.Bool
	messages  atomic.Uint64
	snapshots atomic.Uint64
	sessions  atomic.Uint64
}

// New returns a client that delivers parsed snapshots to rec
func New(cfg Config, rec domain.RecorderPort, log logger.Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg: cfg,
		rec: rec,
		log: log.With().Str("component", "overlay").Str("url", cfg.URL).Logger(),
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
			Proxy:            websocket.DefaultDialer.Proxy,
		},
	}
}

// Connected reports whether a session is currently open
func (c *Client) Connected() bool { return c.connected.Load() }

// Stats returns the current counters
func (c *Client) Stats() Stats {
	return Stats{
		Messages:  c.messages.Load(),
		Snapshots: c.snapshots.Load(),
		Sessions:  c.sessions.Load(),
	}
}

// Run dials, streams and redials until ctx is cancelled
// every ended session or failed dial asks the recorder to flush
func (c *Client) Run(ctx context.Context) error {
	for {
		if err := c.session(ctx); err != nil && ctx.Err() == nil {
			c.log.Warn().Err(err).Stringer("kind", perr.KindOf(err)).Dur("retry_in", c.cfg.Reconnect).Msg("overlay session ended")
		}
		c.rec.Flush()

		if err := sleep(ctx, c.cfg.Reconnect); err != nil {
			c.log.Info().Msg("overlay client stopped")
			return nil
		}
	}
}

func (c *Client) session(ctx context.Context) (err error) {
	id := uuid.NewString()
	ctx = logger.WithSession(ctx, id)
	log := c.log.With().Str("session_id", id).Logger()

	ctx, span := trace.Start(ctx, "overlay.session",
		attribute.String("overlay.url", c.cfg.URL),
		attribute.String("session_id", id),
	)
	defer func() {
		if ctx.Err() != nil {
			err = nil
		}
		trace.End(span, err)
	}()

	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeNetwork, "overlay dial %s", c.cfg.URL)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	conn.SetReadLimit(readLimit)
	if err := conn.WriteJSON(call{Call: "getLanguage"}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeNetwork, "overlay getLanguage")
	}
	if err := conn.WriteJSON(call{Call: "subscribe", Events: c.cfg.Events}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeNetwork, "overlay subscribe")
	}

	c.sessions.Add(1)
	c.connected.Store(true)
	defer c.connected.Store(false)
	log.Info().Strs("events", c.cfg.Events).Msg("overlay connected")

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info().Msg("overlay closed the session")
				return nil
			}
			return perr.Wrap(err, perr.ErrorCodeNetwork, "overlay read")
		}
		if mt != websocket.TextMessage {
			continue
		}
		c.messages.Add(1)
		c.handle(log, data)
	}
}

// handle forwards CombatData payloads, other events are counted and ignored
func (c *Client) handle(log logger.Logger, data []byte) {
	enc, rows, ok := combat.ParseCombatData(data)
	if !ok {
		log.Trace().Int("bytes", len(data)).Msg("overlay message skipped")
		return
	}
	c.snapshots.Add(1)
	c.rec.RecordComponents(enc, rows, json.RawMessage(data))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
