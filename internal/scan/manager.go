package scan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"shelfscan/internal/barcode"
	"shelfscan/internal/history"
	"shelfscan/internal/item"
	"shelfscan/internal/logging"
	"shelfscan/internal/notifications"
	"shelfscan/internal/notion"
	"shelfscan/internal/settings"
)

// State is the scan session's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateProcessing
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateProcessing:
		return "processing"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Lookup resolves a code to an item; nil, nil means no record exists.
type Lookup interface {
	Fetch(ctx context.Context, code string) (*item.ScannedItem, error)
}

// Gateway writes pages to the destination database.
type Gateway interface {
	CreatePage(ctx context.Context, token, databaseID string, props notion.Properties) (*notion.Page, error)
}

// SettingsSource supplies the user's destination settings. Load returns
// nil, nil when nothing has been saved.
type SettingsSource interface {
	Load() (*settings.Settings, error)
	Validate(settings.Settings) settings.Result
}

// HistoryStore persists the history list.
type HistoryStore interface {
	List(ctx context.Context) ([]history.Entry, error)
	Save(ctx context.Context, entries []history.Entry) error
	Clear(ctx context.Context) error
}

// Notifier is told about save outcomes.
type Notifier interface {
	Publish(ctx context.Context, event notifications.Event, payload notifications.Payload) error
}

// Manager owns one scanning session: the classifier, the current item, the
// history list and the single-flight guard shared by Scan, Save and Resend.
type Manager struct {
	lookup   Lookup
	gateway  Gateway
	settings SettingsSource
	store    HistoryStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	state      State
	classifier *barcode.Classifier
	generation uint64
	sessionID  string
	loading    bool
	current    *item.ScannedItem
	candidate  string
	lastErr    *Failure

	historyMu sync.Mutex
	history   []history.Entry
}

// Option configures a Manager.
type Option func(*Manager)

// WithHistoryStore persists history through store. Without it history lives
// in memory only.
func WithHistoryStore(store HistoryStore) Option {
	return func(m *Manager) { m.store = store }
}

// WithNotifier publishes save outcomes through n.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New builds a Manager in the idle state.
func New(lookup Lookup, gateway Gateway, source SettingsSource, opts ...Option) (*Manager, error) {
	if lookup == nil {
		return nil, errors.New("scan: lookup required")
	}
	if gateway == nil {
		return nil, errors.New("scan: gateway required")
	}
	if source == nil {
		return nil, errors.New("scan: settings source required")
	}
	m := &Manager{
		lookup:   lookup,
		gateway:  gateway,
		settings: source,
		notifier: noopNotifier{},
		logger:   logging.NewNop(),
		now:      time.Now,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "scan")
	return m, nil
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the failure that moved the session into StateError.
func (m *Manager) LastError() *Failure {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Candidate returns the most recent non-ISBN value seen by the scanner.
func (m *Manager) Candidate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.candidate
}

// Loading reports whether a lookup or save is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// CurrentItem returns the item most recently resolved or edited.
func (m *Manager) CurrentItem() (item.ScannedItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return item.ScannedItem{}, false
	}
	return *m.current, true
}

// SetCurrentItem replaces the current item with an edited copy.
func (m *Manager) SetCurrentItem(it item.ScannedItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &it
}

// begin claims the single-flight slot.
func (m *Manager) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		return false
	}
	m.loading = true
	return true
}

func (m *Manager) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, notifications.Event, notifications.Payload) error {
	return nil
}
