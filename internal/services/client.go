// Authenticated request pipeline for the Spotify Web API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapi/internal/shared"
)

// DefaultPrefix is prepended to every relative request path.
const DefaultPrefix = "https://api.spotify.com/v1/"

// Options configures [New]. At least one of AccessToken or Resolver must be set.
type Options struct {
	// Prefix replaces [DefaultPrefix].
	Prefix string
	// AccessToken is a static bearer token. It takes precedence over Resolver.
	AccessToken string
	// Resolver supplies a token before each request.
	Resolver TokenResolver
	// HTTPClient defaults to [http.DefaultClient]. It must support concurrent requests.
	HTTPClient *http.Client
	// Logger defaults to [shared.NewLogger] on stderr.
	Logger *log.Logger
}

// Client dispatches authenticated requests to the Spotify Web API.
//
// A Client is immutable after [New] and safe for concurrent use. It performs no retries and
// imposes no deadline: callers needing bounded latency pass a context with a timeout.
type Client struct {
	prefix     string
	resolver   TokenResolver
	httpClient *http.Client
	logger     *log.Logger
}

// New validates opts and creates a client. It fails with [shared.ErrMissingCredentials] when no
// credential source is configured.
func New(opts Options) (*Client, error) {
	var resolver TokenResolver
	switch {
	case opts.AccessToken != "":
		resolver = StaticToken(opts.AccessToken)
	case opts.Resolver != nil:
		resolver = opts.Resolver
	default:
		return nil, fmt.Errorf("failed to create client: %w", shared.ErrMissingCredentials)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if _, err := url.Parse(prefix); err != nil {
		return nil, fmt.Errorf("%w: prefix %q: %v", shared.ErrInvalidConfig, prefix, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		prefix:     prefix,
		resolver:   resolver,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Name identifies the API the client talks to.
func (c *Client) Name() string {
	return "Spotify"
}

// Prefix returns the base URL prepended to relative paths.
func (c *Client) Prefix() string {
	return c.prefix
}

// Get sends a GET request with params encoded as query parameters.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (string, error) {
	return c.Dispatch(ctx, http.MethodGet, path, params)
}

// Post sends a POST request with payload as the JSON body.
func (c *Client) Post(ctx context.Context, path string, payload any) (string, error) {
	return c.Dispatch(ctx, http.MethodPost, path, payload)
}

// Put sends a PUT request with payload as the JSON body.
func (c *Client) Put(ctx context.Context, path string, payload any) (string, error) {
	return c.Dispatch(ctx, http.MethodPut, path, payload)
}

// Delete sends a DELETE request with payload as the JSON body.
func (c *Client) Delete(ctx context.Context, path string, payload any) (string, error) {
	return c.Dispatch(ctx, http.MethodDelete, path, payload)
}

// Dispatch performs an authenticated request and returns the raw body of a 2xx response.
//
// GET payloads are appended to the query string and must be a map[string]string, [url.Values] or nil.
// POST, PUT and DELETE payloads are encoded as the JSON body; nil sends no body. Other methods are
// sent without a payload.
//
// Failures are returned as [*TransportError], [*ParseError], or whatever [Classify] makes of the response.
func (c *Client) Dispatch(ctx context.Context, method, path string, payload any) (string, error) {
	endpoint := c.resolveURL(path)

	var body io.Reader
	switch method {
	case http.MethodGet:
		withQuery, err := appendQuery(endpoint, payload)
		if err != nil {
			return "", err
		}
		endpoint = withQuery
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				return "", &ParseError{Op: "encode request", Err: err}
			}
			body = bytes.NewReader(data)
		}
	}

	token, err := c.resolver.ResolveToken(ctx)
	if err != nil {
		return "", &TransportError{Op: "resolve token", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return "", &TransportError{Op: "create request", Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	logger := shared.WithLogger(c.logger, "request_id", shared.GenerateID())
	logger.Debug("dispatching request", "method", method, "url", endpoint)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("request failed", "method", method, "url", endpoint, "error", err)
		return "", &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("request complete", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", Classify(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read response", Err: err}
	}

	return string(data), nil
}

// resolveURL prepends the prefix to anything that is not already an absolute http(s) URL.
func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(c.prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}

// appendQuery adds payload to endpoint's query string, keeping any query already present in the path.
func appendQuery(endpoint string, payload any) (string, error) {
	var params url.Values
	switch p := payload.(type) {
	case nil:
		return endpoint, nil
	case map[string]string:
		params = make(url.Values, len(p))
		for k, v := range p {
			params.Set(k, v)
		}
	case url.Values:
		params = p
	default:
		return "", fmt.Errorf("%w: GET payload must be map[string]string or url.Values, got %T", ErrUnsupportedPayload, payload)
	}

	if len(params) == 0 {
		return endpoint, nil
	}

	switch {
	case strings.HasSuffix(endpoint, "?"), strings.HasSuffix(endpoint, "&"):
		return endpoint + params.Encode(), nil
	case strings.Contains(endpoint, "?"):
		return endpoint + "&" + params.Encode(), nil
	default:
		return endpoint + "?" + params.Encode(), nil
	}
}
