// Package messages turns failures into user-facing text.
//
// Classify places an error in the closed services.Kind taxonomy, Describe
// looks up the English catalog entry for a kind, and Format renders it for a
// terminal. String-typed failures bypass classification through FromText.
package messages
