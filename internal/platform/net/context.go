// Package net provides utilities for working with request contexts
package net

import (
	"context"

	"combatlog/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// WithRequest annotates ctx with a request id visible to chi and to logger.C
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	// set chi RequestID so chimw.GetReqID can retrieve it
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// NewRequestID returns a fresh id for work that does not arrive over http
func NewRequestID() string { return uuid.NewString() }
