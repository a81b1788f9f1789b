package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shelfscan/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrNetwork, "notion", "create page", "request failed", base)
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"notion", "create page", "request failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestKindOfPrefersSpecificMarker(t *testing.T) {
	err := services.Wrap(services.ErrTimeout, "openbd", "get", "", services.ErrNetwork)
	kind, ok := services.KindOf(err)
	if !ok || kind != services.KindTimeout {
		t.Fatalf("expected timeout kind, got %s (%v)", kind, ok)
	}
	if _, ok := services.KindOf(errors.New("plain")); ok {
		t.Fatal("expected plain error to carry no kind")
	}
	if kind, ok := services.KindOf(nil); ok || kind != services.KindUnknown {
		t.Fatalf("expected unknown for nil, got %s", kind)
	}
}

func TestTypedErrorsMatchMarkers(t *testing.T) {
	cfgErr := &services.ConfigError{Problems: []string{"notion token is required", "database id is required"}}
	if !errors.Is(cfgErr, services.ErrConfigInvalid) {
		t.Fatal("expected config error to match ErrConfigInvalid")
	}
	if !strings.Contains(cfgErr.Error(), "database id is required") {
		t.Fatalf("unexpected config error text %q", cfgErr.Error())
	}

	mapErr := &services.MappingError{Field: "barcode"}
	if !errors.Is(mapErr, services.ErrMappingInvalid) {
		t.Fatal("expected mapping error to match ErrMappingInvalid")
	}
	if got := mapErr.Error(); got != "invalid property mapping: barcode is required" {
		t.Fatalf("unexpected mapping error text %q", got)
	}
	if kind, _ := services.KindOf(mapErr); kind != services.KindMappingInvalid {
		t.Fatalf("expected mapping kind, got %s", kind)
	}
}

func TestKindsIsClosed(t *testing.T) {
	kinds := services.Kinds()
	if len(kinds) != 15 {
		t.Fatalf("expected 15 kinds, got %d", len(kinds))
	}
	if kinds[len(kinds)-1] != services.KindUnknown {
		t.Fatalf("expected unknown last, got %s", kinds[len(kinds)-1])
	}
}

func TestTransportMarker(t *testing.T) {
	if marker := services.TransportMarker(context.DeadlineExceeded); marker != services.ErrTimeout {
		t.Fatalf("expected timeout marker, got %v", marker)
	}
	if marker := services.TransportMarker(errors.New("connection refused")); marker != services.ErrNetwork {
		t.Fatalf("expected network marker, got %v", marker)
	}
}
