package messages

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"shelfscan/internal/services"
)

var serverStatusPattern = regexp.MustCompile(`\b5\d\d\b`)

// Classify maps err onto the failure taxonomy. Typed markers win; untyped
// errors fall back to keyword matching on the lower-cased message.
func Classify(err error) services.Kind {
	if err == nil {
		return services.KindUnknown
	}
	if kind, ok := services.KindOf(err); ok {
		return kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.KindTimeout
	}
	return ClassifyText(err.Error())
}

// ClassifyText applies the keyword rules to a bare message.
func ClassifyText(text string) services.Kind {
	msg := strings.ToLower(text)
	switch {
	case strings.Contains(msg, "network"):
		return services.KindNetwork
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return services.KindTimeout
	case serverStatusPattern.MatchString(msg):
		return services.KindServer
	case strings.Contains(msg, "invalid") && strings.Contains(msg, "token"):
		return services.KindAuthInvalidToken
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "401"):
		return services.KindAuthUnauthorized
	case strings.Contains(msg, "database not found"), strings.Contains(msg, "404"):
		return services.KindDestinationNotFound
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "403"):
		return services.KindDestinationAccessDenied
	case strings.Contains(msg, "book not found"), strings.Contains(msg, "barcode"):
		return services.KindItemNotFound
	case strings.Contains(msg, "storage") && strings.Contains(msg, "read"):
		return services.KindStorageRead
	case strings.Contains(msg, "storage") && strings.Contains(msg, "write"):
		return services.KindStorageWrite
	}
	return services.KindUnknown
}
