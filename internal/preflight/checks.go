package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"shelfscan/internal/notion"
	"shelfscan/internal/services"
)

// probeISBN is a stable, long-lived OpenBD record.
const probeISBN = "9784873117324"

// NotionProbe is the subset of the Notion client the checks call.
type NotionProbe interface {
	ValidateToken(ctx context.Context, token string) (*notion.User, error)
	Database(ctx context.Context, token, databaseID string) (*notion.Database, error)
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckNotionToken confirms the integration token is accepted.
func CheckNotionToken(ctx context.Context, probe NotionProbe, token string) Result {
	const name = "Notion token"

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	user, err := probe.ValidateToken(checkCtx, token)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	who := strings.TrimSpace(user.Name)
	if who == "" {
		who = user.ID
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("authenticated as %s", who)}
}

// CheckNotionDatabase confirms the database exists and is shared with the
// integration.
func CheckNotionDatabase(ctx context.Context, probe NotionProbe, token, databaseID string) Result {
	const name = "Notion database"

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	db, err := probe.Database(checkCtx, token, databaseID)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	title := strings.TrimSpace(db.Name())
	if title == "" {
		title = db.ID
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%q reachable", title)}
}

// CheckOpenBD verifies the lookup service answers.
func CheckOpenBD(ctx context.Context, baseURL string, timeout time.Duration) Result {
	const name = "OpenBD"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/get?isbn="+probeISBN, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%v)", err)}
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(fmt.Errorf("%w: %w", services.TransportMarker(err), err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Name: name, Detail: fmt.Sprintf("check failed (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

func summarizeError(err error) string {
	switch {
	case errors.Is(err, services.ErrTimeout):
		return "timed out (service unresponsive)"
	case errors.Is(err, services.ErrNetwork):
		return "unreachable (check network connectivity)"
	}
	return err.Error()
}
