// Package client talks to the mocked entry form API over HTTP and satisfies
// both controller collaborator contracts.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultLocationsPath = "/api/locations"
	defaultValidatePath  = "/api/names/validate"
	defaultTimeout       = 10 * time.Second
	maxBodyBytes         = 1 << 20
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("client: %s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e StatusError) StatusCode() int { return e.Code }

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request made without its own deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLocationsPath overrides the locations route.
func WithLocationsPath(path string) Option {
	return func(c *Client) {
		if strings.TrimSpace(path) != "" {
			c.locationsPath = path
		}
	}
}

// WithValidatePath overrides the name validation route.
func WithValidatePath(path string) Option {
	return func(c *Client) {
		if strings.TrimSpace(path) != "" {
			c.validatePath = path
		}
	}
}

// Client is an HTTP implementation of LocationSource and NameValidator.
type Client struct {
	base          *url.URL
	http          *http.Client
	timeout       time.Duration
	locationsPath string
	validatePath  string
}

// New parses baseURL and applies options.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, errors.New("client: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: unsupported scheme %q", base.Scheme)
	}

	c := &Client{
		base:          base,
		http:          http.DefaultClient,
		timeout:       defaultTimeout,
		locationsPath: defaultLocationsPath,
		validatePath:  defaultValidatePath,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Locations fetches every country option in server order.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	var payload struct {
		Data []option `json:"data"`
	}
	if err := c.getJSON(ctx, c.locationsPath, nil, &payload); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(payload.Data))
	for _, opt := range payload.Data {
		value := opt.Value
		if value == "" {
			value = opt.Label
		}
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out, nil
}

// IsNameValid asks the server whether name is still available.
func (c *Client) IsNameValid(ctx context.Context, name string) (bool, error) {
	var payload struct {
		Data struct {
			Name  string `json:"name"`
			Valid *bool  `json:"valid"`
		} `json:"data"`
	}
	query := url.Values{"name": []string{name}}
	if err := c.getJSON(ctx, c.validatePath, query, &payload); err != nil {
		return false, err
	}
	if payload.Data.Valid == nil {
		return false, errors.New("client: validation response missing valid flag")
	}
	return *payload.Data.Valid, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.resolve(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: GET %s: %w", target, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return StatusError{Code: res.StatusCode, URL: target}
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s: %w", target, err)
	}
	return nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
