package config

const (
	defaultConfigPath           = "~/.config/shelfscan/config.toml"
	defaultDataDir              = "~/.local/share/shelfscan"
	defaultLogDir               = "~/.local/share/shelfscan/logs"
	defaultSettingsFile         = "~/.config/shelfscan/settings.toml"
	defaultHistoryDBName        = "history.db"
	defaultOpenBDBaseURL        = "https://api.openbd.jp/v1"
	defaultOpenBDTimeout        = 10
	defaultNotionBaseURL        = "https://api.notion.com/v1"
	defaultNotionAPIVersion     = "2022-06-28"
	defaultNotionTimeout        = 30
	defaultNotionPreviewSize    = 5
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			SettingsFile: defaultSettingsFile,
		},
		OpenBD: OpenBD{
			BaseURL:        defaultOpenBDBaseURL,
			TimeoutSeconds: defaultOpenBDTimeout,
		},
		Notion: Notion{
			BaseURL:         defaultNotionBaseURL,
			APIVersion:      defaultNotionAPIVersion,
			TimeoutSeconds:  defaultNotionTimeout,
			PreviewPageSize: defaultNotionPreviewSize,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			SaveSuccess:    true,
			SaveFailure:    true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
