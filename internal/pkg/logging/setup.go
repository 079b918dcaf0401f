package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/benchprophet/benchprophet/internal/pkg/config"
)

// SetupLogger installs the global slog logger: a text handler on stdout at
// the configured level, tagged with the service name.
func SetupLogger(cfg *config.LoggingConfig, serviceName string) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch strings.ToLower(cfg.Level) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)
	return logger
}
