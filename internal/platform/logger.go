package platform

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LevelOff sits above every level slog emits, so nothing passes it.
const LevelOff = slog.Level(100)

// ConfigureLogger installs the process-wide logger. Diagnostics always go to
// out, which the CLI points at stderr so stdout stays parseable.
func ConfigureLogger(levelValue, formatValue string, out io.Writer) (*slog.Logger, error) {
	level, err := ParseLogLevel(levelValue)
	if err != nil {
		return nil, err
	}
	format, err := ParseLogFormat(formatValue)
	if err != nil {
		return nil, err
	}
	if level == LevelOff {
		out = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: dropTime(format)}
	var handler slog.Handler
	switch format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler).With("app", "shellcommander")
	slog.SetDefault(logger)
	return logger, nil
}

// dropTime strips timestamps from text output; interactive runs are short.
func dropTime(format LogFormat) func([]string, slog.Attr) slog.Attr {
	if format == LogFormatJSON {
		return nil
	}
	return func(groups []string, attr slog.Attr) slog.Attr {
		if len(groups) == 0 && attr.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return attr
	}
}

func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "error":
		return slog.LevelError, nil
	case "off", "none", "quiet":
		return LevelOff, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", value)
	}
}

func ParseLogFormat(value string) (LogFormat, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", string(LogFormatText):
		return LogFormatText, nil
	case string(LogFormatJSON):
		return LogFormatJSON, nil
	default:
		return LogFormatText, fmt.Errorf("invalid log format %q", value)
	}
}
