package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golangdaddy/roadrush/pkg/config"
	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "loud", Format: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled for unknown level")
	}
}

func TestToFileWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadrush.log")
	log, err := ToFile(config.LoggingConfig{Level: "info"}, path)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	log.Info("session started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("log file missing entry: %s", data)
	}
}
