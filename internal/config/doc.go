// Package config loads, normalizes, and validates shelfscan configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NTFY_TOPIC and SHELFSCAN_LOG_LEVEL. Validation failures wrap
// services.ErrConfigInvalid.
//
// Notion credentials and the field mapping are not part of Config; they are
// user settings owned by the settings package and reloaded on every save.
package config
