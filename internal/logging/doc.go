// Package logging assembles structured slog loggers and formatting helpers used
// across shelfscan.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with scan session IDs, barcodes, history entry IDs, and correlation
// IDs. Credentials go through Secret or MaskSecret so only a short prefix is
// ever written. NewNop provides a discard logger for tests and optional
// wiring.
package logging
