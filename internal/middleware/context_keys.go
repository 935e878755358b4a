package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values this package stores in a context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	identityCtxKey = contextKey("identity")
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger if none is found.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithIdentity returns a copy of ctx carrying the authenticated caller.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// GetIdentityFromContext retrieves the authenticated caller from the Gin request context.
// It returns the identity and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	identity, ok := c.Request.Context().Value(identityCtxKey).(domain.Identity)
	return identity, ok
}
