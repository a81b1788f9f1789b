package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrNetwork                 = errors.New("network error")
	ErrTimeout                 = errors.New("timeout")
	ErrServer                  = errors.New("server error")
	ErrAuthInvalidToken        = errors.New("invalid token")
	ErrAuthUnauthorized        = errors.New("unauthorized")
	ErrDestinationNotFound     = errors.New("database not found")
	ErrDestinationAccessDenied = errors.New("access denied")
	ErrConfigMissing           = errors.New("configuration missing")
	ErrConfigInvalid           = errors.New("configuration invalid")
	ErrMappingInvalid          = errors.New("invalid property mapping")
	ErrItemNotFound            = errors.New("book not found")
	ErrInvalidItem             = errors.New("invalid item")
	ErrStorageRead             = errors.New("storage read error")
	ErrStorageWrite            = errors.New("storage write error")
)

// Kind names one member of the closed failure taxonomy.
type Kind string

const (
	KindNetwork                 Kind = "network"
	KindTimeout                 Kind = "timeout"
	KindServer                  Kind = "server"
	KindAuthInvalidToken        Kind = "auth_invalid_token"
	KindAuthUnauthorized        Kind = "auth_unauthorized"
	KindDestinationNotFound     Kind = "destination_not_found"
	KindDestinationAccessDenied Kind = "destination_access_denied"
	KindConfigMissing           Kind = "config_missing"
	KindConfigInvalid           Kind = "config_invalid"
	KindMappingInvalid          Kind = "mapping_invalid"
	KindItemNotFound            Kind = "item_not_found"
	KindInvalidItem             Kind = "invalid_item"
	KindStorageRead             Kind = "storage_read"
	KindStorageWrite            Kind = "storage_write"
	KindUnknown                 Kind = "unknown"
)

// markers is ordered so that the most specific marker wins when an error
// chain carries several of them.
var markers = []struct {
	marker error
	kind   Kind
}{
	{ErrMappingInvalid, KindMappingInvalid},
	{ErrConfigMissing, KindConfigMissing},
	{ErrConfigInvalid, KindConfigInvalid},
	{ErrInvalidItem, KindInvalidItem},
	{ErrItemNotFound, KindItemNotFound},
	{ErrAuthInvalidToken, KindAuthInvalidToken},
	{ErrAuthUnauthorized, KindAuthUnauthorized},
	{ErrDestinationNotFound, KindDestinationNotFound},
	{ErrDestinationAccessDenied, KindDestinationAccessDenied},
	{ErrTimeout, KindTimeout},
	{ErrNetwork, KindNetwork},
	{ErrServer, KindServer},
	{ErrStorageRead, KindStorageRead},
	{ErrStorageWrite, KindStorageWrite},
}

// Kinds lists every taxonomy member in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(markers)+1)
	for _, m := range markers {
		out = append(out, m.kind)
	}
	return append(out, KindUnknown)
}

// KindOf reports the taxonomy member tagged on err, if any.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return KindUnknown, false
	}
	for _, m := range markers {
		if errors.Is(err, m.marker) {
			return m.kind, true
		}
	}
	return KindUnknown, false
}

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		if err == nil {
			return errors.New(detail)
		}
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// TransportMarker picks ErrTimeout or ErrNetwork for an error returned by an
// HTTP round trip.
func TransportMarker(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrNetwork
}

// ConfigError lists the problems found while validating user settings.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	if len(e.Problems) == 0 {
		return ErrConfigInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConfigInvalid, strings.Join(e.Problems, "; "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigInvalid
}

// MappingError names the required payload field that was absent.
type MappingError struct {
	Field string
}

func (e *MappingError) Error() string {
	if e.Field == "" {
		return ErrMappingInvalid.Error() + ": required properties are missing"
	}
	return fmt.Sprintf("%s: %s is required", ErrMappingInvalid, e.Field)
}

func (e *MappingError) Is(target error) bool {
	return target == ErrMappingInvalid
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
