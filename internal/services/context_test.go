package services_test

import (
	"context"
	"testing"

	"shelfscan/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-1")
	ctx = services.WithBarcode(ctx, "9784873117324")
	ctx = services.WithHistoryID(ctx, "hist-9")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "sess-1" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if code, ok := services.BarcodeFromContext(ctx); !ok || code != "9784873117324" {
		t.Fatalf("unexpected barcode: %v %v", code, ok)
	}
	if id, ok := services.HistoryIDFromContext(ctx); !ok || id != "hist-9" {
		t.Fatalf("unexpected history id: %v %v", id, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := services.WithBarcode(context.Background(), "")
	if _, ok := services.BarcodeFromContext(ctx); ok {
		t.Fatal("expected no barcode value")
	}
}
