package testsupport

import (
	"path/filepath"
	"testing"

	"shelfscan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths live under a per-test temp
// directory. Options are applied after the defaults.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SettingsFile = filepath.Join(base, "config", "settings.toml")
	cfgVal.Paths.HistoryDB = filepath.Join(base, "data", "history.db")
	cfgVal.Notifications.NtfyTopic = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithOpenBDURL points the lookup client at a test server.
func WithOpenBDURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OpenBD.BaseURL = url
	}
}

// WithNotionURL points the Notion client at a test server.
func WithNotionURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notion.BaseURL = url
	}
}

// WithNtfyTopic sets the notification topic.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
