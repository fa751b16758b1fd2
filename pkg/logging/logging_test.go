package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/slide-lab/pkg/logging"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &logging.Config{Level: logging.LevelWarn, Format: logging.FormatJSON, Service: "slide-lab"}
	logger := logging.NewWithWriter(cfg, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "presentation", "p1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["msg"] != "kept" || record["service"] != "slide-lab" || record["presentation"] != "p1" {
		t.Errorf("record = %v", record)
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")

	var cfg logging.Config
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if cfg.Level != logging.LevelDebug || cfg.Format != logging.FormatText || cfg.Service != "slide-lab" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestConfig_Rejections(t *testing.T) {
	tests := []struct {
		name string
		cfg  logging.Config
	}{
		{"level", logging.Config{Level: "loud"}},
		{"format", logging.Config{Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize succeeded, want error")
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := logging.Config{Level: logging.LevelInfo, Format: logging.FormatText, Service: "a"}
	cfg.Merge(&logging.Config{Format: logging.FormatJSON})

	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatJSON || cfg.Service != "a" {
		t.Errorf("merged = %+v", cfg)
	}
}
