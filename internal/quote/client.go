// Package quote fetches famous quotes from the RapidAPI quote service and seeds
// them into the task list.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultURL is the random famous quotes endpoint.
	DefaultURL = "https://andruxnet-random-famous-quotes.p.rapidapi.com/?cat=famous&count=10"

	// DefaultHost is the RapidAPI host header for DefaultURL.
	DefaultHost = "andruxnet-random-famous-quotes.p.rapidapi.com"

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 10 * time.Second
)

// ErrNoQuotes is returned when the service answers with an empty array.
var ErrNoQuotes = errors.New("quote service returned no quotes")

// Quote is one record of the service response.
type Quote struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("quote service status: %d", e.StatusCode)
	}
	return fmt.Sprintf("quote service status: %d: %s", e.StatusCode, e.Body)
}

// Config holds the endpoint and credentials.
type Config struct {
	URL     string
	APIKey  string
	Host    string
	Timeout time.Duration
}

// Client calls the quote service.
type Client struct {
	url        string
	apiKey     string
	host       string
	httpClient *http.Client
}

// NewClient returns a Client. Empty fields fall back to the defaults.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		host:       cfg.Host,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchQuotes performs one GET and decodes the quote array.
func (c *Client) FetchQuotes(ctx context.Context) ([]Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request (quote): %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get quotes: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body (quote): %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	var quotes []Quote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}
	return quotes, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
