package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shelfscan/internal/bookinfo"
	"shelfscan/internal/config"
	"shelfscan/internal/history"
	"shelfscan/internal/logging"
	"shelfscan/internal/notifications"
	"shelfscan/internal/notion"
	"shelfscan/internal/scan"
	"shelfscan/internal/services"
	"shelfscan/internal/settings"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	store *history.Store
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// requestContext tags the command's context with a correlation id for logs.
func (c *commandContext) requestContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithRequestID(ctx, uuid.NewString())
}

func (c *commandContext) settingsStore() (*settings.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return settings.NewStore(cfg.Paths.SettingsFile)
}

func (c *commandContext) historyStore() (*history.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

func (c *commandContext) notionClient() (*notion.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return notion.New(cfg.Notion.BaseURL, cfg.Notion.APIVersion,
		notion.WithHTTPClient(&http.Client{Timeout: cfg.NotionTimeout()}),
		notion.WithLogger(c.loggerValue()),
	)
}

func (c *commandContext) lookupClient() (*bookinfo.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return bookinfo.New(cfg.OpenBD.BaseURL,
		bookinfo.WithHTTPClient(&http.Client{Timeout: cfg.OpenBDTimeout()}),
		bookinfo.WithLogger(c.loggerValue()),
	)
}

func (c *commandContext) notifier() notifications.Service {
	cfg, err := c.ensureConfig()
	if err != nil {
		return notifications.NewService(nil)
	}
	return notifications.NewService(cfg)
}

// newManager wires a scan manager with persisted history loaded.
func (c *commandContext) newManager(ctx context.Context) (*scan.Manager, error) {
	lookup, err := c.lookupClient()
	if err != nil {
		return nil, err
	}
	gateway, err := c.notionClient()
	if err != nil {
		return nil, err
	}
	source, err := c.settingsStore()
	if err != nil {
		return nil, err
	}
	store, err := c.historyStore()
	if err != nil {
		return nil, err
	}
	manager, err := scan.New(lookup, gateway, source,
		scan.WithHistoryStore(store),
		scan.WithNotifier(c.notifier()),
		scan.WithLogger(c.loggerValue()),
	)
	if err != nil {
		return nil, err
	}
	if err := manager.LoadHistory(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

func (c *commandContext) close() {
	if c.store != nil {
		_ = c.store.Close()
		c.store = nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
