package messages

import (
	"errors"
	"strings"

	"shelfscan/internal/services"
)

// Message is the user-facing rendering of a failure.
type Message struct {
	Title           string
	Message         string
	SuggestedAction string
}

var catalog = map[services.Kind]Message{
	services.KindNetwork: {
		Title:           "Network error",
		Message:         "Check your internet connection.",
		SuggestedAction: "Confirm Wi-Fi or wired connectivity, then try again.",
	},
	services.KindTimeout: {
		Title:           "Timed out",
		Message:         "The connection timed out.",
		SuggestedAction: "Wait a moment and try again.",
	},
	services.KindServer: {
		Title:           "Server error",
		Message:         "The remote service is having problems.",
		SuggestedAction: "Try again in a little while.",
	},
	services.KindAuthInvalidToken: {
		Title:           "Authentication failed",
		Message:         "The Notion integration token is invalid.",
		SuggestedAction: "Enter a valid token with `shelfscan settings set --token`.",
	},
	services.KindAuthUnauthorized: {
		Title:           "Not authorized",
		Message:         "You do not have permission to access this resource.",
		SuggestedAction: "Check the integration's capabilities in Notion.",
	},
	services.KindDestinationNotFound: {
		Title:           "Database not found",
		Message:         "The configured Notion database could not be found.",
		SuggestedAction: "Make sure the database still exists and is shared with the integration.",
	},
	services.KindDestinationAccessDenied: {
		Title:           "Database access denied",
		Message:         "Access to the database was denied.",
		SuggestedAction: "Share the database with the integration in Notion.",
	},
	services.KindConfigMissing: {
		Title:           "Setup incomplete",
		Message:         "No settings have been saved yet.",
		SuggestedAction: "Set the Notion token, database id and property mapping with `shelfscan settings set`.",
	},
	services.KindConfigInvalid: {
		Title:           "Settings error",
		Message:         "The saved settings are invalid.",
		SuggestedAction: "Review the settings with `shelfscan settings validate`.",
	},
	services.KindMappingInvalid: {
		Title:           "Invalid property mapping",
		Message:         "The property mapping is incomplete.",
		SuggestedAction: "Map the required fields (title and barcode) to database properties.",
	},
	services.KindItemNotFound: {
		Title:           "Book not found",
		Message:         "No information was found for the scanned barcode.",
		SuggestedAction: "Scan another book or enter the details by hand.",
	},
	services.KindInvalidItem: {
		Title:           "Invalid barcode",
		Message:         "The barcode or item details are not valid.",
		SuggestedAction: "Scan a valid ISBN barcode.",
	},
	services.KindStorageRead: {
		Title:           "Read error",
		Message:         "Local data could not be read.",
		SuggestedAction: "Check the data directory permissions and run `shelfscan doctor`.",
	},
	services.KindStorageWrite: {
		Title:           "Write error",
		Message:         "Local data could not be saved.",
		SuggestedAction: "Check free disk space and directory permissions.",
	},
	services.KindUnknown: {
		Title:           "Unexpected error",
		Message:         "An unexpected error occurred.",
		SuggestedAction: "Try again; rerun with --log-level debug for details.",
	},
}

// Describe returns the catalog entry for kind. Unrecognized kinds render as
// unknown.
func Describe(kind services.Kind) Message {
	if msg, ok := catalog[kind]; ok {
		return msg
	}
	return catalog[services.KindUnknown]
}

// ForError classifies err and enriches the catalog text with details carried
// by typed errors.
func ForError(err error) Message {
	msg := Describe(Classify(err))

	var cfgErr *services.ConfigError
	if errors.As(err, &cfgErr) && len(cfgErr.Problems) > 0 {
		msg.Message = "Settings error: " + strings.Join(cfgErr.Problems, ", ")
		return msg
	}
	var mapErr *services.MappingError
	if errors.As(err, &mapErr) && mapErr.Field != "" {
		msg.Message = "The " + mapErr.Field + " property mapping is required."
		return msg
	}
	return msg
}

// FromText wraps a string-typed failure without classification.
func FromText(text string) Message {
	return Message{Title: "Error", Message: text}
}

// Format renders m as a message followed by its suggested action.
func Format(m Message) string {
	if m.SuggestedAction == "" {
		return m.Message
	}
	return m.Message + "\n\n" + m.SuggestedAction
}
