// Package logger builds the slog handler used for diagnostic output.
// Diagnostics go to stderr through charmbracelet/log; user-facing output
// stays with the printer package.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Supported formats.
const (
	TextFormat   = "text"
	JSONFormat   = "json"
	LogfmtFormat = "logfmt"
)

// DefaultLevel keeps diagnostics quiet unless asked for.
const DefaultLevel = "warn"

// EnvLevel overrides the default level when --log-level is not given.
const EnvLevel = "PKGMETA_LOG_LEVEL"

// CreateHandler returns a handler writing to w at the given level and format.
func CreateHandler(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var formatter charmlog.Formatter
	switch strings.ToLower(format) {
	case "", TextFormat:
		formatter = charmlog.TextFormatter
	case JSONFormat:
		formatter = charmlog.JSONFormatter
	case LogfmtFormat:
		formatter = charmlog.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q (available: text, json, logfmt)", format)
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:     lvl,
		Formatter: formatter,
		Prefix:    "pkgmeta",
	}), nil
}

// ParseLevel maps a level name to a charmbracelet/log level.
// An empty name selects DefaultLevel.
func ParseLevel(level string) (charmlog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return ParseLevel(DefaultLevel)
	case "debug", "trace":
		return charmlog.DebugLevel, nil
	case "info":
		return charmlog.InfoLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "error":
		return charmlog.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

// Setup installs the handler as the slog default.
func Setup(w io.Writer, level, format string) error {
	h, err := CreateHandler(w, level, format)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}
