package scan

import (
	"context"

	"shelfscan/internal/history"
	"shelfscan/internal/logging"
)

// LoadHistory replaces the in-memory history with the persisted list.
func (m *Manager) LoadHistory(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	entries, err := m.store.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) > history.MaxEntries {
		entries = entries[:history.MaxEntries]
	}
	m.historyMu.Lock()
	m.history = entries
	m.historyMu.Unlock()
	return nil
}

// History returns a copy of the list, newest first.
func (m *Manager) History() []history.Entry {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()
	out := make([]history.Entry, len(m.history))
	copy(out, m.history)
	return out
}

// ClearHistory empties both the persisted and in-memory lists.
func (m *Manager) ClearHistory(ctx context.Context) error {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()
	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			return err
		}
	}
	m.history = nil
	return nil
}

// updateHistory applies fn and persists the result. Persistence failures are
// logged; the in-memory list stays authoritative for the session.
func (m *Manager) updateHistory(ctx context.Context, fn func([]history.Entry) []history.Entry) {
	m.historyMu.Lock()
	defer m.historyMu.Unlock()
	m.history = fn(m.history)
	if m.store == nil {
		return
	}
	if err := m.store.Save(ctx, m.history); err != nil {
		logging.WithContext(ctx, m.logger).Warn("persist history failed", logging.Error(err))
	}
}
