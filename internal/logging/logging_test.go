package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/calcsuite/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"", zapcore.InfoLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.input, got, err)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		enabled  zapcore.Level
		disabled zapcore.Level
		wantErr  bool
	}{
		{"Defaults", config.LoggingConfig{}, "", zapcore.InfoLevel, zapcore.DebugLevel, false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", zapcore.DebugLevel, zapcore.DebugLevel - 1, false},
		{"Override wins", config.LoggingConfig{Level: "debug"}, "error", zapcore.ErrorLevel, zapcore.WarnLevel, false},
		{"Bad format", config.LoggingConfig{Format: "xml"}, "", 0, 0, true},
		{"Bad override", config.LoggingConfig{}, "loud", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("expected %v to be enabled", tt.enabled)
			}
			if logger.Core().Enabled(tt.disabled) {
				t.Errorf("expected %v to be disabled", tt.disabled)
			}
		})
	}
}

func TestNewWithOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calcsuite.log")
	logger, err := New(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("schedule generated", zap.String("op", "logging.TestNewWithOutputFile"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "schedule generated") {
		t.Errorf("log file missing entry, got %q", string(data))
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	logger := zap.NewExample()
	if OrNop(logger) != logger {
		t.Error("OrNop should return a non-nil logger unchanged")
	}
}
