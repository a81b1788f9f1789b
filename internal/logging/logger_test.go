package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelfscan/internal/config"
	"shelfscan/internal/logging"
	"shelfscan/internal/services"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, "shelfscan.log"))
	if !strings.Contains(content, "hello from test") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "scan").Info("item saved", logging.String("title", "Go Programming"))

	content := readLog(t, logPath)
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(content, "scan: item saved") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, `title="Go Programming"`) {
		t.Fatalf("expected quoted attribute, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")

	if content := readLog(t, logPath); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerMasksSecretsAndAddsContext(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithBarcode(context.Background(), "9784873117324")
	ctx = services.WithSessionID(ctx, "sess-1")
	logging.WithContext(ctx, logger).Info("saving", logging.Secret("token", "secret_abcdefghijklmnop"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["token"] != "secret_***" {
		t.Fatalf("expected masked token, got %v", entry["token"])
	}
	if entry[logging.FieldBarcode] != "9784873117324" || entry[logging.FieldSessionID] != "sess-1" {
		t.Fatalf("expected context fields, got %v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected lower-case level, got %v", entry["level"])
	}
	if _, ok := entry["ts"].(string); !ok {
		t.Fatalf("expected ts string, got %v", entry)
	}
	if _, ok := entry["source"]; ok {
		t.Fatalf("info logs must not carry source, got %v", entry["source"])
	}
}

func TestJSONLoggerShortSourceForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("cache miss")

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	source, _ := entry["source"].(string)
	if !strings.HasPrefix(source, "logger_test.go:") {
		t.Fatalf("expected short source, got %v", entry["source"])
	}
	if entry["level"] != "debug" {
		t.Fatalf("expected debug level, got %v", entry["level"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestMaskSecret(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"short":                 "***",
		"1234567":               "***",
		"secret_xyz":            "secret_***",
		"ntn_12345678901234567": "ntn_123***",
	}
	for in, want := range cases {
		if got := logging.MaskSecret(in); got != want {
			t.Errorf("MaskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
