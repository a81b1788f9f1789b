// Package barcode decides which decoded symbol values start a lookup.
//
// A Classifier receives one batch of decoded strings per camera frame (or per
// line of scanner input) and answers Accept, Continue, or Ignore. The first
// ISBN-shaped value accepts and deactivates the classifier in one step, so a
// physical scan can trigger at most one lookup until the orchestrator rearms
// it. The ISBN helpers are pure and safe to call from anywhere.
package barcode
