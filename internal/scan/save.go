package scan

import (
	"context"
	"fmt"
	"time"

	"shelfscan/internal/history"
	"shelfscan/internal/item"
	"shelfscan/internal/logging"
	"shelfscan/internal/mapping"
	"shelfscan/internal/notifications"
	"shelfscan/internal/services"
)

// Save writes it to the destination database. Settings are reloaded on every
// call. Each attempt, successful or not, is recorded in history.
func (m *Manager) Save(ctx context.Context, it item.ScannedItem) Result {
	if !m.begin() {
		return busy()
	}
	defer m.end()

	entry := history.NewEntry(it)
	ctx = services.WithHistoryID(services.WithBarcode(ctx, it.Barcode()), entry.ID)
	m.updateHistory(ctx, func(list []history.Entry) []history.Entry {
		return history.Prepend(list, entry)
	})

	res := m.deliver(ctx, it)
	m.finalize(ctx, entry, res)
	return res
}

// Resend fetches the entry's barcode again and saves the fresh record,
// patching the existing entry rather than adding a new one.
func (m *Manager) Resend(ctx context.Context, historyID string) Result {
	if !m.begin() {
		return busy()
	}
	defer m.end()

	m.historyMu.Lock()
	entry, ok := history.Find(m.history, historyID)
	m.historyMu.Unlock()
	if !ok {
		return failedText(fmt.Sprintf("history entry %s not found", historyID))
	}

	ctx = services.WithHistoryID(services.WithBarcode(ctx, entry.Barcode), entry.ID)
	logger := logging.WithContext(ctx, m.logger)
	logger.Info("resending history entry")

	it, err := m.lookup.Fetch(ctx, entry.Barcode)
	var res Result
	switch {
	case err != nil:
		res = failed(err)
	case it == nil:
		res = failed(services.Wrap(services.ErrItemNotFound, "scan", "resend",
			fmt.Sprintf("no record for %s", entry.Barcode), nil))
	default:
		entry.Title = it.Title()
		entry.Kind = it.Kind()
		res = m.deliver(ctx, *it)
	}
	m.finalize(ctx, entry, res)
	return res
}

func (m *Manager) deliver(ctx context.Context, it item.ScannedItem) Result {
	logger := logging.WithContext(ctx, m.logger)

	st, err := m.settings.Load()
	if err != nil {
		logger.Warn("load settings failed", logging.Error(err))
		return failed(err)
	}
	if st == nil {
		return failed(services.Wrap(services.ErrConfigMissing, "scan", "load settings", "no settings saved", nil))
	}
	if check := m.settings.Validate(*st); !check.IsValid {
		return failed(&services.ConfigError{Problems: check.Errors})
	}

	props, err := mapping.Prepare(st.Mapping, it)
	if err != nil {
		logger.Warn("property mapping incomplete", logging.Error(err))
		return failed(err)
	}

	started := time.Now()
	page, err := m.gateway.CreatePage(ctx, st.Token, st.DatabaseID, props)
	if err != nil {
		logger.Warn("create page failed",
			logging.Error(err),
			logging.Duration("elapsed", time.Since(started)),
		)
		return failed(err)
	}
	logger.Info("page created",
		logging.String("page_id", page.ID),
		logging.Int("properties", len(props)),
		logging.Duration("elapsed", time.Since(started)),
	)
	saved := it
	return Result{Item: &saved, PageID: page.ID, PageURL: page.URL}
}

func (m *Manager) finalize(ctx context.Context, entry history.Entry, res Result) {
	if res.Success() {
		entry = entry.MarkSent(res.PageID, m.now())
	} else {
		entry = entry.MarkFailed(res.Failure.Message.Message)
	}
	m.updateHistory(ctx, func(list []history.Entry) []history.Entry {
		updated, ok := history.Replace(list, entry)
		if !ok {
			return history.Prepend(list, entry)
		}
		return updated
	})
	m.notify(ctx, entry, res)
}

func (m *Manager) notify(ctx context.Context, entry history.Entry, res Result) {
	event := notifications.EventSaveSucceeded
	payload := notifications.Payload{"title": entry.Title, "barcode": entry.Barcode}
	if res.Success() {
		payload["pageURL"] = res.PageURL
	} else {
		event = notifications.EventSaveFailed
		payload["error"] = res.Failure.Message.Message
		payload["kind"] = string(res.Failure.Kind)
	}
	if err := m.notifier.Publish(ctx, event, payload); err != nil {
		logging.WithContext(ctx, m.logger).Warn("notification failed", logging.Error(err))
	}
}
