// Package httpfetch is the single HTTP entry point for legislation.gov.uk
// (§4.1, §6): it fetches a relative path and classifies the response as
// HTML, XML, or an HTML-where-XML-was-expected fallback signal, retrying
// transient failures with backoff.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// ContentKind classifies a successful fetch response (§4.1, §6).
type ContentKind string

const (
	KindHTML ContentKind = "html"
	KindXML  ContentKind = "xml"
)

// Result is the outcome of a successful fetch.
type Result struct {
	Kind        ContentKind
	Body        []byte
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// FetchError is returned on failure (§4.1: "{error, status, message}").
// Redirects the caller did not explicitly allow are surfaced here too, so
// callers can retry an alternative path.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// DefaultUserAgent identifies this scraper to legislation.gov.uk.
const DefaultUserAgent = "ukleg-register-scraper/1.0"

// DefaultBaseURL is the legislation.gov.uk origin fetch paths are relative to.
const DefaultBaseURL = "https://www.legislation.gov.uk"

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries uint64
	HTTPClient *http.Client
}

// DefaultConfig returns sensible defaults for legislation.gov.uk fetches.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		BaseURL:    DefaultBaseURL,
		UserAgent:  DefaultUserAgent,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// Client is the single fetch entry point used by every parser stage.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient builds a Client, defaulting unset config fields.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Redirects are surfaced as errors (§4.1) so callers can
				// retry an alternative path rather than silently follow.
				return http.ErrUseLastResponse
			},
		}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Fetch retrieves path (relative to BaseURL) and classifies the response.
// Transient network failures and 5xx responses are retried with exponential
// backoff; 4xx and redirect responses are returned immediately as errors.
func (c *Client) Fetch(ctx context.Context, path string) (*Result, error) {
	url := c.cfg.BaseURL + path

	backoff := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewExponential(100*time.Millisecond))

	var result *Result
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		req.Header.Set("Accept", "application/xml, text/html")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			return &FetchError{Status: resp.StatusCode, Message: "redirect: " + resp.Header.Get("Location")}
		}
		if resp.StatusCode >= 500 {
			return retry.RetryableError(&FetchError{Status: resp.StatusCode, Message: resp.Status})
		}
		if resp.StatusCode >= 400 {
			return &FetchError{Status: resp.StatusCode, Message: resp.Status}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 32*1024*1024))
		if err != nil {
			return retry.RetryableError(err)
		}

		contentType := resp.Header.Get("Content-Type")
		result = &Result{
			Kind:        classify(contentType),
			Body:        body,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			FetchedAt:   time.Now(),
		}
		return nil
	})
	if err != nil {
		var fe *FetchError
		if asFetchError(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{Status: 0, Message: err.Error()}
	}
	return result, nil
}

// classify maps a Content-Type header to a ContentKind, defaulting to HTML
// (the catalogue's listing/changes pages have no XML variant).
func classify(contentType string) ContentKind {
	if strings.Contains(contentType, "xml") {
		return KindXML
	}
	return KindHTML
}

func asFetchError(err error, target **FetchError) bool {
	if fe, ok := err.(*FetchError); ok {
		*target = fe
		return true
	}
	return false
}
