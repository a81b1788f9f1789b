package bookinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"shelfscan/internal/barcode"
	"shelfscan/internal/item"
	"shelfscan/internal/logging"
	"shelfscan/internal/services"
)

// DefaultBaseURL is the public OpenBD v1 endpoint.
const DefaultBaseURL = "https://api.openbd.jp/v1"

// Fetcher resolves a scanned code to an item. A nil item with a nil error
// means the source has no record for the code.
type Fetcher interface {
	Fetch(ctx context.Context, code string) (*item.ScannedItem, error)
}

// Client looks up books on OpenBD.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

var _ Fetcher = (*Client)(nil)

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

// WithLogger attaches a logger for lookup diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an OpenBD client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("openbd base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "bookinfo")
	return client, nil
}

// NormalizeCode folds full-width characters and keeps digits and the ISBN-10
// check character.
func NormalizeCode(code string) string {
	folded := norm.NFKC.String(code)
	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// Fetch looks up code and converts the record into a book item.
func (c *Client) Fetch(ctx context.Context, code string) (*item.ScannedItem, error) {
	info, err := c.Lookup(ctx, code)
	if err != nil || info == nil {
		return nil, err
	}
	price := info.Price
	if price != nil && *price < 0 {
		price = nil
	}
	it, err := item.New(item.Fields{
		Barcode:   barcode.ToISBN13(NormalizeCode(code)),
		Title:     info.Title,
		Details:   item.Book{Author: info.Author, Publisher: info.Publisher},
		Price:     price,
		ImageURL:  info.CoverURL,
		ScannedAt: c.now(),
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Lookup returns the normalized record for code, or nil when OpenBD has no
// usable record.
func (c *Client) Lookup(ctx context.Context, code string) (*Info, error) {
	isbn := NormalizeCode(code)
	if isbn == "" {
		return nil, services.Wrap(services.ErrInvalidItem, "openbd", "lookup", "isbn is required", nil)
	}

	endpoint, err := url.Parse(c.baseURL + "/get")
	if err != nil {
		return nil, fmt.Errorf("parse openbd url: %w", err)
	}
	params := url.Values{}
	params.Set("isbn", isbn)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.TransportMarker(err), "openbd", "lookup",
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 500:
		return nil, services.Wrap(services.ErrServer, "openbd", "lookup",
			fmt.Sprintf("openbd returned %d (latency=%v)", resp.StatusCode, latency), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("openbd returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var records []*Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode openbd response: %w", err)
	}

	logger := logging.WithContext(ctx, c.logger)
	if len(records) == 0 || records[0] == nil {
		logger.Debug("openbd has no record", logging.String("isbn", isbn), logging.Duration("latency", latency))
		return nil, nil
	}
	info := parseRecord(*records[0])
	if info.Title == "" {
		logger.Debug("openbd record has no title; treating as not found", logging.String("isbn", isbn))
		return nil, nil
	}
	logger.Debug("openbd lookup complete",
		logging.String("isbn", isbn),
		logging.String("title", info.Title),
		logging.Duration("latency", latency),
	)
	return &info, nil
}
