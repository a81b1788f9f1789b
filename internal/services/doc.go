// Package services defines shared utilities consumed by the scan pipeline and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp scan session IDs, barcodes, history entry IDs,
//     and correlation identifiers for logging.
//   - The closed failure taxonomy: sentinel markers, the Kind enum, KindOf,
//     and the Wrap helper that tags errors for later classification.
//   - Typed ConfigError and MappingError values that carry the details user
//     facing messages need.
//
// Integrations should wrap transport and remote failures with the matching
// marker so the messages package can classify them without string matching.
package services
