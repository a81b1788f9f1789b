package notion

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"shelfscan/internal/services"
)

const (
	msgAuthFailed   = "authentication failed: the Notion integration token is invalid"
	msgAccessDenied = "access denied: share the database with your Notion integration"
	msgNotFound     = "database not found: check the database id"
	msgRateLimited  = "rate limited by Notion: wait a moment and try again"
	msgNetwork      = "network error while contacting Notion"
)

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

type errorBody struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// Error returns the friendly message for the status.
func (e *APIError) Error() string {
	switch e.Status {
	case http.StatusUnauthorized:
		return msgAuthFailed
	case http.StatusForbidden:
		return msgAccessDenied
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusTooManyRequests:
		return msgRateLimited
	}
	lower := strings.ToLower(e.Message)
	switch {
	case strings.Contains(lower, "network"):
		return msgNetwork
	case strings.Contains(lower, "access"), strings.Contains(lower, "permission"):
		return msgAccessDenied
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("notion returned %d", e.Status)
	}
}

// Is maps the response onto the services failure markers.
func (e *APIError) Is(target error) bool {
	return e.marker() == target
}

func (e *APIError) marker() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return services.ErrAuthInvalidToken
	case e.Status == http.StatusForbidden:
		return services.ErrDestinationAccessDenied
	case e.Status == http.StatusNotFound:
		return services.ErrDestinationNotFound
	case e.Status == http.StatusTooManyRequests, e.Status >= 500:
		return services.ErrServer
	}
	lower := strings.ToLower(e.Message)
	switch {
	case strings.Contains(lower, "network"):
		return services.ErrNetwork
	case strings.Contains(lower, "access"), strings.Contains(lower, "permission"):
		return services.ErrDestinationAccessDenied
	}
	return nil
}
