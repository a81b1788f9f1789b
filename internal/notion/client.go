package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shelfscan/internal/logging"
	"shelfscan/internal/services"
)

const (
	DefaultBaseURL       = "https://api.notion.com/v1"
	DefaultVersion       = "2022-06-28"
	DefaultQueryPageSize = 5

	searchPageSize  = 100
	maxResponseSize = 4 << 20
)

// Gateway is the subset of the API the scan orchestrator writes through.
type Gateway interface {
	CreatePage(ctx context.Context, token, databaseID string, props Properties) (*Page, error)
	QueryDatabase(ctx context.Context, token, databaseID string, pageSize int) (*QueryResult, error)
	Schema(ctx context.Context, token, databaseID string) (map[string]string, error)
}

// Client talks to the Notion REST API.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Notion client. Empty arguments fall back to the defaults.
func New(baseURL, version string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("notion base url: %w", err)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultVersion
	}
	client := &Client{
		baseURL:    baseURL,
		version:    version,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "notion")
	return client, nil
}

// CreatePage inserts a page into the database.
func (c *Client) CreatePage(ctx context.Context, token, databaseID string, props Properties) (*Page, error) {
	id, err := requireID(databaseID, "create page")
	if err != nil {
		return nil, err
	}
	endpoint, err := c.endpoint(id, "pages")
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"parent":     map[string]string{"database_id": id},
		"properties": props,
	}
	var page Page
	if err := c.do(ctx, token, "create page", http.MethodPost, endpoint, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// QueryDatabase returns the most recent pages. pageSize <= 0 uses the default.
func (c *Client) QueryDatabase(ctx context.Context, token, databaseID string, pageSize int) (*QueryResult, error) {
	id, err := requireID(databaseID, "query database")
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = DefaultQueryPageSize
	}
	endpoint, err := c.endpoint(id, "databases", id, "query")
	if err != nil {
		return nil, err
	}
	var result QueryResult
	if err := c.do(ctx, token, "query database", http.MethodPost, endpoint, map[string]int{"page_size": pageSize}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Database fetches the database object.
func (c *Client) Database(ctx context.Context, token, databaseID string) (*Database, error) {
	id, err := requireID(databaseID, "get database")
	if err != nil {
		return nil, err
	}
	endpoint, err := c.endpoint(id, "databases", id)
	if err != nil {
		return nil, err
	}
	var db Database
	if err := c.do(ctx, token, "get database", http.MethodGet, endpoint, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// DataSource fetches a data source by its own identifier.
func (c *Client) DataSource(ctx context.Context, token, dataSourceID string) (*DataSource, error) {
	id, err := requireID(dataSourceID, "get data source")
	if err != nil {
		return nil, err
	}
	endpoint, err := c.endpoint(id, "data_sources", id)
	if err != nil {
		return nil, err
	}
	var ds DataSource
	if err := c.do(ctx, token, "get data source", http.MethodGet, endpoint, nil, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Schema returns column name to property type. Databases that expose data
// sources are read through the first one; older databases carry their
// properties inline.
func (c *Client) Schema(ctx context.Context, token, databaseID string) (map[string]string, error) {
	db, err := c.Database(ctx, token, databaseID)
	if err != nil {
		return nil, err
	}
	if len(db.DataSources) > 0 && db.DataSources[0].ID != "" {
		ds, err := c.DataSource(ctx, token, db.DataSources[0].ID)
		if err == nil {
			return schemaTypes(ds.Properties), nil
		}
		if len(db.Properties) == 0 {
			return nil, err
		}
		c.logger.Warn("data source lookup failed; using database properties",
			logging.String("data_source_id", db.DataSources[0].ID),
			logging.Error(err),
		)
	}
	return schemaTypes(db.Properties), nil
}

// ValidateToken resolves the bot user behind token.
func (c *Client) ValidateToken(ctx context.Context, token string) (*User, error) {
	endpoint, err := c.endpoint("", "users", "me")
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.do(ctx, token, "validate token", http.MethodGet, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchDatabases lists the databases shared with the integration.
func (c *Client) SearchDatabases(ctx context.Context, token string) ([]DatabaseRef, error) {
	endpoint, err := c.endpoint("", "search")
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"filter":    map[string]string{"value": "data_source", "property": "object"},
		"page_size": searchPageSize,
	}
	var resp searchResponse
	if err := c.do(ctx, token, "search databases", http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, err
	}
	refs := make([]DatabaseRef, 0, len(resp.Results))
	seen := make(map[string]struct{}, len(resp.Results))
	for _, r := range resp.Results {
		id := r.ID
		if r.Parent.DatabaseID != "" {
			id = r.Parent.DatabaseID
		}
		id = NormalizeID(id)
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, DatabaseRef{ID: id, Title: plainText(r.Title)})
	}
	return refs, nil
}

func requireID(id, op string) (string, error) {
	normalized := NormalizeID(id)
	if normalized == "" {
		return "", services.Wrap(services.ErrConfigInvalid, "notion", op, "database id is required", nil)
	}
	return normalized, nil
}

// endpoint joins path-escaped segments onto the base URL. id is only used to
// make a parse failure diagnosable; an id that does not parse unescaped is
// rejected rather than silently encoded.
func (c *Client) endpoint(id string, segments ...string) (*url.URL, error) {
	if _, err := url.Parse(c.baseURL + "/" + strings.Join(segments, "/")); err != nil {
		if id != "" {
			return nil, services.Wrap(services.ErrConfigInvalid, "notion", "build url",
				fmt.Sprintf("invalid request URL for database id %q", id), err)
		}
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	u, err := url.Parse(c.baseURL + "/" + strings.Join(escaped, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	return u, nil
}

func (c *Client) do(ctx context.Context, token, op, method string, endpoint *url.URL, body, out any) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return services.Wrap(services.ErrConfigMissing, "notion", op, "notion token is required", nil)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.TransportMarker(err), "notion", op,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return services.Wrap(services.TransportMarker(err), "notion", op, "read response", err)
	}

	c.logger.Debug("notion request",
		logging.String("op", op),
		logging.String("method", method),
		logging.String("path", endpoint.Path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
		logging.Secret("token", token),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

// IsAPIStatus reports whether err is an APIError with the given status.
func IsAPIStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
