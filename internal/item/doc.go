// Package item defines ScannedItem, the immutable record a scan produces.
//
// Book and Product details form a sealed two-variant sum type; code that needs
// variant-specific fields should use a type switch over Details.
package item
