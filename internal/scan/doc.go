// Package scan coordinates a scanning session.
//
// Manager moves between idle, scanning, processing, success and error as
// frames arrive from a barcode source. Accepted codes are resolved through a
// Lookup; Save reloads the user's settings, builds the property payload and
// writes it through a Gateway, recording every attempt in history.
//
// Only one lookup or save runs at a time. A second call while one is in
// flight fails immediately without touching any collaborator. Closing the
// scanner bumps a session generation so lookups that finish afterwards leave
// state alone.
package scan
