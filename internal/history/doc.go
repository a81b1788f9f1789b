// Package history keeps the list of recent save attempts.
//
// Entries are held newest first and capped at MaxEntries. The pure list
// helpers (Prepend, Replace, Find) are used by the scan manager; Store writes
// the whole list to SQLite in one transaction so a crash never leaves a
// partial history behind.
package history
