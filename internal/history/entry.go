package history

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"shelfscan/internal/item"
)

// MaxEntries bounds the persisted history.
const MaxEntries = 10

// Status is the delivery state of a history entry.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusError   Status = "error"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusError:
		return true
	}
	return false
}

// Entry records one save attempt.
type Entry struct {
	ID           string
	Barcode      string
	Title        string
	Kind         item.Kind
	Status       Status
	ScannedAt    time.Time
	SentAt       *time.Time
	ErrorMessage string
	PageID       string
}

// NewEntry starts a pending entry for it.
func NewEntry(it item.ScannedItem) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Barcode:   it.Barcode(),
		Title:     it.Title(),
		Kind:      it.Kind(),
		Status:    StatusPending,
		ScannedAt: it.ScannedAt(),
	}
}

// MarkSent finalizes e as delivered.
func (e Entry) MarkSent(pageID string, at time.Time) Entry {
	e.Status = StatusSent
	e.PageID = strings.TrimSpace(pageID)
	e.ErrorMessage = ""
	sent := at
	e.SentAt = &sent
	return e
}

// MarkFailed finalizes e as failed with message.
func (e Entry) MarkFailed(message string) Entry {
	e.Status = StatusError
	e.ErrorMessage = message
	e.SentAt = nil
	return e
}

// Prepend returns a new list with entry first, capped at MaxEntries.
func Prepend(list []Entry, entry Entry) []Entry {
	out := make([]Entry, 0, min(len(list)+1, MaxEntries))
	out = append(out, entry)
	for _, e := range list {
		if len(out) == MaxEntries {
			break
		}
		out = append(out, e)
	}
	return out
}

// Replace returns a copy of list with the entry sharing entry.ID swapped in.
// The second result is false when no entry matched.
func Replace(list []Entry, entry Entry) ([]Entry, bool) {
	out := make([]Entry, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == entry.ID {
			out[i] = entry
			return out, true
		}
	}
	return out, false
}

// Find returns the entry with id.
func Find(list []Entry, id string) (Entry, bool) {
	id = strings.TrimSpace(id)
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
