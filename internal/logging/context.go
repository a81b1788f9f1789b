package logging

import (
	"context"
	"log/slog"

	"shelfscan/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID identifies one scan session.
	FieldSessionID = "session_id"
	// FieldBarcode is the code being looked up or saved.
	FieldBarcode = "barcode"
	// FieldHistoryID is the history entry a save writes to.
	FieldHistoryID = "history_id"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.SessionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if code, ok := services.BarcodeFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldBarcode, code))
	}
	if id, ok := services.HistoryIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldHistoryID, id))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
