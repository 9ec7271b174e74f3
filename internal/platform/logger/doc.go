// Package logger configures the application-wide slog logger and provides
// helpers for carrying a request-scoped logger through a context.Context.
package logger
