package app

import (
	"io"
	"log/slog"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances. Unknown
// levels fall back to info; Config validation rejects them earlier.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(logW, handlerOpts)
	default:
		handler = slog.NewTextHandler(logW, handlerOpts)
	}

	return slog.New(handler)
}
