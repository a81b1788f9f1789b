// Package logs tails the shelfscan log file for the logs command.
//
// Tail prints the last N lines with bounded memory and, in follow mode,
// polls for appended lines until the caller's context ends. Truncated or
// rotated files are re-read from the start.
package logs
