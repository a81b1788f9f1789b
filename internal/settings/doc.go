// Package settings stores the user's Notion destination, credential, and
// property mapping.
//
// Settings live in their own TOML file rather than the application config so
// they can be edited while the program runs; the scan orchestrator reloads
// them on every save. Store serializes access with a gofrs/flock lock and
// writes through a temp file. Validate reports every problem at once using
// go-playground/validator rules and stable English messages.
package settings
