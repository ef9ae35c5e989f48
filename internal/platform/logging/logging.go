package logging

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v3"
)

var schema = httplog.SchemaECS.Concise(false)

// New builds the service logger. Attributes follow the ECS schema so the
// request logs and application logs share field names.
func New(w io.Writer, env, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: schema.ReplaceAttr,
	})
	return slog.New(handler).With(
		slog.String("app", "hrdocs"),
		slog.String("env", env),
	)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger *slog.Logger, level string) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		Level:  ParseLevel(level),
		Schema: httplog.SchemaECS,
	})
}
