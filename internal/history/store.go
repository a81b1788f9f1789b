package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shelfscan/internal/config"
	"shelfscan/internal/item"
	"shelfscan/internal/services"
)

// Store persists scan history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Paths.HistoryDB)
}

// OpenPath opens the database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("history database path required")
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageRead, "history", "open", "open sqlite db", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, services.Wrap(services.ErrStorageRead, "history", "open",
				fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// List returns the stored entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, barcode, title, kind, status, scanned_at,
        sent_at, error_message, page_id FROM history_entries ORDER BY position ASC`)
	if err != nil {
		return nil, services.Wrap(services.ErrStorageRead, "history", "list", "query entries", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, MaxEntries)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, services.Wrap(services.ErrStorageRead, "history", "list", "scan entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrStorageRead, "history", "list", "iterate entries", err)
	}
	return entries, nil
}

// Save replaces the stored list with entries. Only the first MaxEntries are
// written.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return services.Wrap(services.ErrStorageWrite, "history", "save", "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM history_entries"); err != nil {
		return services.Wrap(services.ErrStorageWrite, "history", "save", "clear entries", err)
	}
	for i, entry := range entries {
		if !entry.Status.Valid() {
			return services.Wrap(services.ErrStorageWrite, "history", "save",
				fmt.Sprintf("entry %s has invalid status %q", entry.ID, entry.Status), nil)
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO history_entries (
            id, position, barcode, title, kind, status, scanned_at, sent_at, error_message, page_id
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID,
			i,
			entry.Barcode,
			entry.Title,
			string(entry.Kind),
			string(entry.Status),
			formatTime(entry.ScannedAt),
			nullableTime(entry.SentAt),
			nullableString(entry.ErrorMessage),
			nullableString(entry.PageID),
		)
		if err != nil {
			return services.Wrap(services.ErrStorageWrite, "history", "save",
				fmt.Sprintf("insert entry %s", entry.ID), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return services.Wrap(services.ErrStorageWrite, "history", "save", "commit", err)
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history_entries"); err != nil {
		return services.Wrap(services.ErrStorageWrite, "history", "clear", "delete entries", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(rows rowScanner) (Entry, error) {
	var (
		entry     Entry
		kind      string
		status    string
		scannedAt string
		sentAt    sql.NullString
		errMsg    sql.NullString
		pageID    sql.NullString
	)
	if err := rows.Scan(&entry.ID, &entry.Barcode, &entry.Title, &kind, &status,
		&scannedAt, &sentAt, &errMsg, &pageID); err != nil {
		return Entry{}, err
	}
	entry.Kind = item.Kind(kind)
	entry.Status = Status(status)
	entry.ScannedAt = parseTime(scannedAt)
	if sentAt.Valid {
		if ts := parseTime(sentAt.String); !ts.IsZero() {
			entry.SentAt = &ts
		}
	}
	entry.ErrorMessage = errMsg.String
	entry.PageID = pageID.String
	return entry, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
