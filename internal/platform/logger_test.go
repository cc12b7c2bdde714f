package platform

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "", want: slog.LevelWarn},
		{input: "WARN", want: slog.LevelWarn},
		{input: "info", want: slog.LevelInfo},
		{input: "debug", want: slog.LevelDebug},
		{input: "error", want: slog.LevelError},
		{input: "off", want: LevelOff},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("expected %v, got %v for %q", tt.want, got, tt.input)
		}
	}
}

func TestParseLogFormatRejectsUnknown(t *testing.T) {
	if _, err := ParseLogFormat("yaml"); err == nil {
		t.Fatalf("expected error for yaml format")
	}
	if got, err := ParseLogFormat(" JSON "); err != nil || got != LogFormatJSON {
		t.Fatalf("expected json format, got %v (%v)", got, err)
	}
}

func TestConfigureLoggerTextOmitsTime(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger, err := ConfigureLogger("info", "text", &buf)
	if err != nil {
		t.Fatalf("ConfigureLogger returned error: %v", err)
	}
	logger.Info("cloned", "repo", "a/b")

	line := buf.String()
	if strings.Contains(line, "time=") {
		t.Fatalf("expected no timestamp, got %q", line)
	}
	if !strings.Contains(line, "app=shellcommander") || !strings.Contains(line, "repo=a/b") {
		t.Fatalf("unexpected log line %q", line)
	}
}

func TestConfigureLoggerJSONFiltersLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger, err := ConfigureLogger("warn", "json", &buf)
	if err != nil {
		t.Fatalf("ConfigureLogger returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("expected json warn line, got %q", out)
	}
}

func TestConfigureLoggerOffDiscards(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger, err := ConfigureLogger("off", "text", &buf)
	if err != nil {
		t.Fatalf("ConfigureLogger returned error: %v", err)
	}
	logger.Error("nope")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
