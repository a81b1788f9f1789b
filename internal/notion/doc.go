// Package notion is the write gateway to the Notion REST API.
//
// Client issues page creation, database query, schema, token and search
// requests with the bearer credential and a fixed Notion-Version header.
// Database identifiers are normalized (hyphens removed, lowercased) before any
// URL is built, and blank identifiers are rejected locally. Non-2xx responses
// decode into APIError, which carries a friendly message and matches the
// services failure markers through errors.Is. The client never retries.
package notion
