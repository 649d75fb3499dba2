package logger

// Notes:
// - Console output is captured through the out writer; colors are on for the
//   console core, so assertions look for message text and field values only.
// - File output goes through lumberjack into t.TempDir().

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ---------------------------------------------------------------------------
// TestParseLevel - Level names
// ---------------------------------------------------------------------------

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNew - Logger construction
// ---------------------------------------------------------------------------

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: FormatJSON}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("hidden")
	log.Info("rendered", zap.String("type", "png"))
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "rendered" || entry["type"] != "png" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Format: FormatText}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("browser launched", zap.Int("pid", 42))
	_ = log.Sync()

	out := buf.String()
	if !strings.Contains(out, "browser launched") || !strings.Contains(out, `"pid": 42`) {
		t.Errorf("text output = %q", out)
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "ogimage.log")

	var buf bytes.Buffer
	log, err := New(Config{Format: FormatText, File: path}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Warn("slow render")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "slow render") {
		t.Errorf("log file = %q, want message", data)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Error("log file should not contain color escapes")
	}
	if !strings.Contains(buf.String(), "slow render") {
		t.Error("console should receive the message too")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Level: "loud"}, nil); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("New() error = %v, want ErrInvalidLevel", err)
	}
}
