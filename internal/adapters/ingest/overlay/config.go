// Package overlay streams CombatData from the overlay plugin websocket into the recorder
package overlay

import (
	"time"

	"combatlog/internal/platform/config"
)

const (
	defaultURL              = "ws://127.0.0.1:10501/ws"
	defaultReconnect        = 2 * time.Second
	defaultHandshakeTimeout = 5 * time.Second
)

var defaultEvents = []string{"CombatData", "LogLine"}

// Config controls the websocket session loop
type Config struct {
	URL              string
	Reconnect        time.Duration
	HandshakeTimeout time.Duration
	Events           []string
}

// FromConfig reads OVERLAY_* keys under cfg
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("OVERLAY_")
	return Config{
		URL:              c.MayString("URL", defaultURL),
		Reconnect:        c.MayDuration("RECONNECT", defaultReconnect),
		HandshakeTimeout: c.MayDuration("HANDSHAKE_TIMEOUT", defaultHandshakeTimeout),
		Events:           c.MayCSV("EVENTS", defaultEvents),
	}
}

func (c Config) withDefaults() Config {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Reconnect <= 0 {
		c.Reconnect = defaultReconnect
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	if len(c.Events) == 0 {
		c.Events = defaultEvents
	}
	return c
}
