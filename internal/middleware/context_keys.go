package middleware

import (
	"context"
	"log/slog"
)

// ctxKey is a private type so context keys cannot collide with other packages.
type ctxKey string

const (
	loggerKey ctxKey = "logger"
	userIDKey ctxKey = "userID"
)

// GetLoggerFromCtx retrieves the request-scoped logger from the context,
// falling back to the process default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
