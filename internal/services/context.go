package services

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	barcodeKey   contextKey = "barcode"
	historyIDKey contextKey = "history_id"
	requestIDKey contextKey = "request_id"
)

// WithSessionID annotates context with the scan session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the scan session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, sessionIDKey)
}

// WithBarcode annotates context with the code being processed.
func WithBarcode(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, barcodeKey, code)
}

// BarcodeFromContext returns the code being processed if present.
func BarcodeFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, barcodeKey)
}

// WithHistoryID annotates context with the history entry being written.
func WithHistoryID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, historyIDKey, id)
}

// HistoryIDFromContext returns the history entry identifier if present.
func HistoryIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, historyIDKey)
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
