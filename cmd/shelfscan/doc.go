// Package main hosts the shelfscan CLI entrypoint and command graph.
//
// Scanning reads barcode frames from standard input, looks ISBNs up in
// openBD and saves accepted items to the configured Notion database. The
// remaining commands manage the saved settings, the recent-save history and
// the notification topic, and probe the environment with doctor.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through commands and flags.
package main
