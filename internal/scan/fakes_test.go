package scan_test

import (
	"context"
	"sync"

	"shelfscan/internal/history"
	"shelfscan/internal/item"
	"shelfscan/internal/notifications"
	"shelfscan/internal/notion"
	"shelfscan/internal/settings"
)

type fakeLookup struct {
	mu      sync.Mutex
	items   map[string]item.ScannedItem
	err     error
	calls   []string
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeLookup) Fetch(ctx context.Context, code string) (*item.ScannedItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, code)
	gate, entered := f.gate, f.entered
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	it, ok := f.items[code]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeGateway struct {
	mu    sync.Mutex
	err   error
	calls []notion.Properties
	token string
	dbID  string
}

func (f *fakeGateway) CreatePage(_ context.Context, token, databaseID string, props notion.Properties) (*notion.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, props)
	f.token = token
	f.dbID = databaseID
	if f.err != nil {
		return nil, f.err
	}
	return &notion.Page{ID: "page-1", URL: "https://www.notion.so/page-1"}, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeSettings struct {
	settings *settings.Settings
	err      error
	loads    int
	// skipValidation reports every settings value as valid.
	skipValidation bool
}

func (f *fakeSettings) Load() (*settings.Settings, error) {
	f.loads++
	if f.err != nil || f.settings == nil {
		return nil, f.err
	}
	st := *f.settings
	return &st, nil
}

func (f *fakeSettings) Validate(s settings.Settings) settings.Result {
	if f.skipValidation {
		return settings.Result{IsValid: true}
	}
	return settings.Validate(s)
}

type memoryHistory struct {
	mu      sync.Mutex
	entries []history.Entry
	saves   int
	err     error
}

func (h *memoryHistory) List(context.Context) ([]history.Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]history.Entry, len(h.entries))
	copy(out, h.entries)
	return out, nil
}

func (h *memoryHistory) Save(_ context.Context, entries []history.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
	if h.err != nil {
		return h.err
	}
	h.entries = make([]history.Entry, len(entries))
	copy(h.entries, entries)
	return nil
}

func (h *memoryHistory) Clear(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	return nil
}

type published struct {
	event   notifications.Event
	payload notifications.Payload
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []published
}

func (r *recordingNotifier) Publish(_ context.Context, event notifications.Event, payload notifications.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{event: event, payload: payload})
	return nil
}
