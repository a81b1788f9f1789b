// Package mapping turns a ScannedItem into a Notion property payload.
//
// Build is pure: it only reads the mapping and the item. Require enforces
// that the title and barcode columns made it into the payload, and Prepare
// combines the two so a save can fail fast before any request is issued.
package mapping
