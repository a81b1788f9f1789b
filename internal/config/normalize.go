package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOpenBD()
	c.normalizeNotion()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SettingsFile) == "" {
		c.Paths.SettingsFile = defaultSettingsFile
	}
	if c.Paths.SettingsFile, err = expandPath(strings.TrimSpace(c.Paths.SettingsFile)); err != nil {
		return fmt.Errorf("paths.settings_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = filepath.Join(c.Paths.DataDir, defaultHistoryDBName)
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeOpenBD() {
	c.OpenBD.BaseURL = strings.TrimRight(strings.TrimSpace(c.OpenBD.BaseURL), "/")
	if c.OpenBD.BaseURL == "" {
		c.OpenBD.BaseURL = defaultOpenBDBaseURL
	}
	if c.OpenBD.TimeoutSeconds == 0 {
		c.OpenBD.TimeoutSeconds = defaultOpenBDTimeout
	}
}

func (c *Config) normalizeNotion() {
	c.Notion.BaseURL = strings.TrimRight(strings.TrimSpace(c.Notion.BaseURL), "/")
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = defaultNotionBaseURL
	}
	c.Notion.APIVersion = strings.TrimSpace(c.Notion.APIVersion)
	if c.Notion.APIVersion == "" {
		c.Notion.APIVersion = defaultNotionAPIVersion
	}
	if c.Notion.TimeoutSeconds == 0 {
		c.Notion.TimeoutSeconds = defaultNotionTimeout
	}
	if c.Notion.PreviewPageSize == 0 {
		c.Notion.PreviewPageSize = defaultNotionPreviewSize
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("SHELFSCAN_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
