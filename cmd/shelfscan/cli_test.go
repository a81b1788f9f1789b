package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"shelfscan/internal/config"
	"shelfscan/internal/logging"
	"shelfscan/internal/testsupport"
)

const (
	knownISBN  = "9784873117324"
	databaseID = "0123456789abcdef0123456789abcdef"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	pages      *atomic.Int32
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	t.Setenv("NTFY_TOPIC", "")
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("SHELFSCAN_LOG_LEVEL", "error")

	openbd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("isbn") != knownISBN {
			_, _ = io.WriteString(w, `[null]`)
			return
		}
		_, _ = io.WriteString(w, `[{"summary":{"isbn":"9784873117324","title":"Go in Practice","author":"Gopher","publisher":"Example Press","pubdate":"2020-01","cover":"https://cover.example/go.jpg"}}]`)
	}))
	t.Cleanup(openbd.Close)

	pages := new(atomic.Int32)
	notionAPI := httptest.NewServer(newFakeNotion(t, pages))
	t.Cleanup(notionAPI.Close)

	cfg := testsupport.NewConfig(t,
		testsupport.WithOpenBDURL(openbd.URL),
		testsupport.WithNotionURL(notionAPI.URL),
	)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, pages: pages}
}

func newFakeNotion(t *testing.T, pages *atomic.Int32) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pages", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Properties map[string]json.RawMessage `json:"properties"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, ok := body.Properties["ISBN"]; !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"object":"error","status":400,"code":"validation_error","message":"ISBN missing"}`)
			return
		}
		n := pages.Add(1)
		_, _ = fmt.Fprintf(w, `{"id":"page-%d","url":"https://notion.example/page-%d"}`, n, n)
	})
	mux.HandleFunc("GET /databases/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"`+databaseID+`","title":[{"plain_text":"Books"}],"properties":{
			"Title":{"id":"title","name":"Title","type":"title"},
			"ISBN":{"id":"a","name":"ISBN","type":"rich_text"},
			"Author":{"id":"b","name":"Author","type":"rich_text"},
			"Price":{"id":"c","name":"Price","type":"number"},
			"Cover":{"id":"d","name":"Cover","type":"files"},
			"Notes":{"id":"e","name":"Notes","type":"rich_text"}}}`)
	})
	mux.HandleFunc("POST /databases/{id}/query", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":[{"id":"page-old","created_time":"2024-05-01T12:00:00.000Z",
			"properties":{"Title":{"id":"title","type":"title","title":[{"plain_text":"Stored Book"}]}}}],"has_more":true}`)
	})
	mux.HandleFunc("POST /search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":[{"object":"data_source","id":"ds-1","title":[{"plain_text":"Books"}],
			"parent":{"type":"database_id","database_id":"`+databaseID+`"}}],"has_more":false}`)
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"bot-1","name":"Shelf Bot","type":"bot"}`)
	})
	return mux
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\nsettings_file = %q\nhistory_db = %q\n\n[openbd]\nbase_url = %q\n\n[notion]\nbase_url = %q\n\n[logging]\nlevel = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.SettingsFile,
		cfg.Paths.HistoryDB,
		cfg.OpenBD.BaseURL,
		cfg.Notion.BaseURL,
		"error",
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}

func TestLookupCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"lookup", knownISBN}, env.configPath, "")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Go in Practice")
	requireContains(t, out, "Example Press")

	out, _, err = runCLI(t, []string{"lookup", "--json", knownISBN}, env.configPath, "")
	if err != nil {
		t.Fatalf("lookup --json: %v", err)
	}
	var view itemView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode lookup json: %v\n%s", err, out)
	}
	if view.Barcode != knownISBN || view.Kind != "book" || view.Author != "Gopher" {
		t.Fatalf("unexpected item view: %+v", view)
	}

	_, stderr, err := runCLI(t, []string{"lookup", "9780804429573"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected lookup of unknown isbn to fail")
	}
	if strings.TrimSpace(stderr) == "" {
		t.Fatal("expected failure to be reported on stderr")
	}
}

func TestScanSaveRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSettings(t, env.cfg.Paths.SettingsFile, testsupport.ValidSettings())

	frames := "4900000000000\n" + knownISBN + ",4900000000000\n"
	out, _, err := runCLI(t, []string{"scan", "--save"}, env.configPath, frames)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Not an ISBN: 4900000000000")
	requireContains(t, out, "Go in Practice")
	requireContains(t, out, "Saved to Notion: https://notion.example/page-1")
	if got := env.pages.Load(); got != 1 {
		t.Fatalf("expected one page created, got %d", got)
	}

	out, _, err = runCLI(t, []string{"history", "list", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	var entries []historyView
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(entries))
	}
	if entries[0].Status != "sent" || entries[0].Barcode != knownISBN || entries[0].PageID != "page-1" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	out, _, err = runCLI(t, []string{"history", "resend", entries[0].ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("history resend: %v", err)
	}
	requireContains(t, out, "Resent Go in Practice")
	if got := env.pages.Load(); got != 2 {
		t.Fatalf("expected resend to create a second page, got %d", got)
	}

	if _, _, err := runCLI(t, []string{"history", "resend", "missing-id"}, env.configPath, ""); err == nil {
		t.Fatal("expected resend of unknown id to fail")
	}

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "History cleared")

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list after clear: %v", err)
	}
	requireContains(t, out, "History is empty")
}

func TestSaveWithoutSettingsFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, []string{"save", knownISBN}, env.configPath, "")
	if err == nil {
		t.Fatal("expected save without settings to fail")
	}
	if strings.TrimSpace(stderr) == "" {
		t.Fatal("expected failure to be reported")
	}
	if got := env.pages.Load(); got != 0 {
		t.Fatalf("expected no pages, got %d", got)
	}

	out, _, err := runCLI(t, []string{"history", "list", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, `"status": "error"`)
}

func TestSaveCommandAppliesOverrides(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteSettings(t, env.cfg.Paths.SettingsFile, testsupport.ValidSettings())

	out, _, err := runCLI(t, []string{"save", knownISBN, "--title", "Renamed"}, env.configPath, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	requireContains(t, out, "page-1")

	out, _, err = runCLI(t, []string{"history", "list", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, `"title": "Renamed"`)
}

func TestSettingsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"settings", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("settings show: %v", err)
	}
	requireContains(t, out, "No settings saved")

	out, _, err = runCLI(t, []string{"settings", "set", "--token", "secret_0123456789abcdef", "--title", "Title"}, env.configPath, "")
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	requireContains(t, out, "Settings are incomplete")

	if _, _, err := runCLI(t, []string{"settings", "validate"}, env.configPath, ""); err == nil {
		t.Fatal("expected incomplete settings to fail validation")
	}

	out, _, err = runCLI(t, []string{"settings", "set", "--database-id", databaseID, "--barcode", "ISBN"}, env.configPath, "")
	if err != nil {
		t.Fatalf("settings set: %v", err)
	}
	requireNotContains(t, out, "incomplete")

	out, _, err = runCLI(t, []string{"settings", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("settings validate: %v", err)
	}
	requireContains(t, out, "Settings valid")

	out, _, err = runCLI(t, []string{"settings", "show", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("settings show --json: %v", err)
	}
	requireContains(t, out, "secret_***")
	requireNotContains(t, out, "secret_0123")
	requireContains(t, out, `"title": "Title"`)

	out, _, err = runCLI(t, []string{"settings", "delete"}, env.configPath, "")
	if err != nil {
		t.Fatalf("settings delete: %v", err)
	}
	requireContains(t, out, "Settings deleted")
	if _, err := os.Stat(env.cfg.Paths.SettingsFile); !os.IsNotExist(err) {
		t.Fatalf("expected settings file removed, stat err=%v", err)
	}
}

func TestNotionCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"notion", "databases"}, env.configPath, ""); err == nil {
		t.Fatal("expected notion commands to require a token")
	}

	testsupport.WriteSettings(t, env.cfg.Paths.SettingsFile, testsupport.ValidSettings())

	out, _, err := runCLI(t, []string{"notion", "schema"}, env.configPath, "")
	if err != nil {
		t.Fatalf("notion schema: %v", err)
	}
	requireContains(t, out, "Notes")
	requireContains(t, out, "barcode")
	requireContains(t, out, "rich_text")

	out, _, err = runCLI(t, []string{"notion", "preview", "--limit", "1"}, env.configPath, "")
	if err != nil {
		t.Fatalf("notion preview: %v", err)
	}
	requireContains(t, out, "Stored Book")
	requireContains(t, out, "More pages available")

	out, _, err = runCLI(t, []string{"notion", "databases"}, env.configPath, "")
	if err != nil {
		t.Fatalf("notion databases: %v", err)
	}
	requireContains(t, out, databaseID)
	requireContains(t, out, "Books")
}

func TestDoctorAndNotify(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected doctor to fail without settings")
	}
	requireContains(t, out, "Some checks failed")

	testsupport.WriteSettings(t, env.cfg.Paths.SettingsFile, testsupport.ValidSettings())
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath, "")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "All checks passed")
	requireContains(t, out, "Shelf Bot")

	out, _, err = runCLI(t, []string{"test-notify"}, env.configPath, "")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Notifications disabled")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	path := logging.FilePath(env.cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "level=INFO msg=\"alpha one\"\nlevel=INFO msg=\"beta two\"\nlevel=ERROR msg=\"alpha three\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "1", "--grep", "alpha"}, env.configPath, "")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "alpha three")
	requireNotContains(t, out, "alpha one")
	requireNotContains(t, out, "beta")
}
