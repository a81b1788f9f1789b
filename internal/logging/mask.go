package logging

const (
	maskVisiblePrefix = 7
	maskSuffix        = "***"
)

// MaskSecret keeps the first seven runes of value and replaces the rest.
// Values no longer than the visible prefix are fully masked.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= maskVisiblePrefix {
		return maskSuffix
	}
	return string(runes[:maskVisiblePrefix]) + maskSuffix
}
