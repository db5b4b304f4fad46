// Package logger builds the shared application logger.
package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/d365fo-tools/recweaver/internal/config"
)

// New creates a named hclog.Logger. The level comes from the
// RECWEAVER_LOG_LEVEL environment variable when set, otherwise from the
// settings file, defaulting to INFO.
func New(settings config.Settings, name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: os.Stderr,
		Level:  determineLevel(settings),
	})
}

func determineLevel(settings config.Settings) hclog.Level {
	if env := os.Getenv("RECWEAVER_LOG_LEVEL"); env != "" {
		return parseLevel(strings.ToUpper(env))
	}

	return parseLevel(strings.ToUpper(settings.Logger.Level))
}

func parseLevel(level string) hclog.Level {
	switch level {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
