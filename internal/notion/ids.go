package notion

import (
	"regexp"
	"strings"
)

var (
	compactIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)
	uuidPattern      = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// NormalizeID trims id, drops hyphens, and lowercases it.
func NormalizeID(id string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(id), "-", ""))
}

// ValidID accepts the 32-character compact form or a hyphenated UUID, in
// either case.
func ValidID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	return compactIDPattern.MatchString(id) || uuidPattern.MatchString(id)
}
