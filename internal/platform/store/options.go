package store

import "combatlog/internal/platform/logger"

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the store logger, the sqlite query tracer inherits it
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log.With().Str("component", "store").Logger()
		return nil
	}
}
