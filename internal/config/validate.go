package config

import (
	"net/url"
	"strings"

	"shelfscan/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEndpoints(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEndpoints() error {
	for key, value := range map[string]string{
		"openbd.base_url": c.OpenBD.BaseURL,
		"notion.base_url": c.Notion.BaseURL,
	} {
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return invalid(key + " must be an absolute http(s) URL")
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return invalid(key + " must use http or https")
		}
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if c.OpenBD.TimeoutSeconds < 0 {
		return invalid("openbd.timeout_seconds must be >= 0")
	}
	if c.Notion.TimeoutSeconds < 0 {
		return invalid("notion.timeout_seconds must be >= 0")
	}
	if c.Notion.PreviewPageSize < 1 || c.Notion.PreviewPageSize > 100 {
		return invalid("notion.preview_page_size must be between 1 and 100")
	}
	if c.Notifications.RequestTimeout < 0 {
		return invalid("notifications.request_timeout must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return invalid("logging.level must be one of debug, info, warn, error (got " + strings.TrimSpace(c.Logging.Level) + ")")
	}
}

func invalid(msg string) error {
	return services.Wrap(services.ErrConfigInvalid, "config", "validate", msg, nil)
}
