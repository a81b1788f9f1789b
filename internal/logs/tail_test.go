package logs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func collect(t *testing.T, path string, opts Options) []string {
	t.Helper()
	var got []string
	if err := Tail(context.Background(), path, opts, func(line string) { got = append(got, line) }); err != nil {
		t.Fatalf("Tail: %v", err)
	}
	return got
}

func TestTailLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelfscan.log")
	writeLines(t, path, "one", "two", "three", "four")

	got := collect(t, path, Options{Lines: 2})
	if strings.Join(got, ",") != "three,four" {
		t.Fatalf("unexpected lines %v", got)
	}

	got = collect(t, path, Options{Lines: 10})
	if len(got) != 4 || got[0] != "one" {
		t.Fatalf("expected whole file, got %v", got)
	}

	if got := collect(t, path, Options{}); len(got) != 0 {
		t.Fatalf("expected no lines for zero limit, got %v", got)
	}
}

func TestTailFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelfscan.log")
	writeLines(t, path, "INFO saved", "ERROR lookup failed", "INFO scanned", "ERROR save failed")

	got := collect(t, path, Options{
		Lines:  1,
		Filter: func(line string) bool { return strings.HasPrefix(line, "ERROR") },
	})
	if len(got) != 1 || got[0] != "ERROR save failed" {
		t.Fatalf("unexpected filtered lines %v", got)
	}
}

func TestTailMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	if got := collect(t, path, Options{Lines: 5}); len(got) != 0 {
		t.Fatalf("expected no lines, got %v", got)
	}
}

func TestTailRejectsDirectory(t *testing.T) {
	err := Tail(context.Background(), t.TempDir(), Options{Lines: 1}, func(string) {})
	if err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestTailFollowPicksUpAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelfscan.log")
	writeLines(t, path, "old")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- Tail(ctx, path, Options{Lines: 1, Follow: true, Poll: 10 * time.Millisecond}, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	snapshot := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), got...)
	}
	waitFor := func(n int) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if len(snapshot()) >= n {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("expected %d lines, got %v", n, snapshot())
	}

	waitFor(1)
	writeLines(t, path, "new")
	waitFor(2)

	if err := os.Truncate(path, 0); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	writeLines(t, path, "fresh")
	waitFor(3)

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Tail returned %v", err)
	}
	lines := snapshot()
	if strings.Join(lines, ",") != "old,new,fresh" {
		t.Fatalf("unexpected follow output %v", lines)
	}
}
