package preflight

import (
	"context"
	"strings"

	"shelfscan/internal/config"
	"shelfscan/internal/notion"
	"shelfscan/internal/settings"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// RunAll executes the local checks and, when settings are usable, the
// remote Notion checks. OpenBD reachability is always probed.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	st, settingsResult := CheckSettings(cfg.Paths.SettingsFile)
	results = append(results, settingsResult)

	results = append(results, CheckOpenBD(ctx, cfg.OpenBD.BaseURL, cfg.OpenBDTimeout()))

	if st == nil || !settingsResult.Passed {
		return results
	}
	client, err := notion.New(cfg.Notion.BaseURL, cfg.Notion.APIVersion)
	if err != nil {
		return append(results, Result{Name: "Notion", Detail: err.Error()})
	}
	token := CheckNotionToken(ctx, client, st.Token)
	results = append(results, token)
	if token.Passed {
		results = append(results, CheckNotionDatabase(ctx, client, st.Token, st.DatabaseID))
	}
	return results
}

// CheckSettings loads and validates the settings file. The settings are
// returned whenever they could be read.
func CheckSettings(path string) (*settings.Settings, Result) {
	const name = "Settings"

	store, err := settings.NewStore(path)
	if err != nil {
		return nil, Result{Name: name, Detail: err.Error()}
	}
	st, err := store.Load()
	if err != nil {
		return nil, Result{Name: name, Detail: err.Error()}
	}
	if st == nil {
		return nil, Result{Name: name, Detail: path + " (not configured; run `shelfscan settings set`)"}
	}
	check := settings.Validate(*st)
	if !check.IsValid {
		return st, Result{Name: name, Detail: strings.Join(check.Errors, "; ")}
	}
	return st, Result{Name: name, Passed: true, Detail: path + " (valid)"}
}
