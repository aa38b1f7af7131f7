// Package formulaic is a client for the Formulaic API: models, formulas
// (recipes), scripts, files, completions and chat completions.
//
// Formula lookups are cached in memory for CacheTTL, so repeated calls for
// the same formula within the window cost a single request.
package formulaic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/formulaic-app/formulaic-go/internal/cache"
	apihttp "github.com/formulaic-app/formulaic-go/internal/http"
	ilogr "github.com/formulaic-app/formulaic-go/internal/logr"
)

const (
	// DefaultURL is the production origin of the Formulaic API.
	DefaultURL = apihttp.DefaultURL

	// DefaultCacheTTL is how long a formula is served from cache.
	DefaultCacheTTL = 5 * time.Minute

	userAgent = "formulaic-go"
)

type (
	// Transport performs a single request and returns the JSON body of a
	// successful response. It fails on network errors and non-success
	// statuses, preferably with an *HTTPError for the latter.
	Transport interface {
		Request(ctx context.Context, method, url string, body io.Reader, headers http.Header) (json.RawMessage, error)
	}

	// FileOpener opens the file at path for upload.
	FileOpener func(path string) (io.ReadCloser, error)

	// HTTPError is returned by the default transport for non-2xx responses.
	HTTPError = apihttp.HTTPError

	// Config provides configuration details to the API client.
	Config struct {
		// API key used to authenticate every request. Required.
		APIKey string
		// The base URL of the Formulaic API. Defaults to DefaultURL.
		BaseURL string
		// Transport performs requests. Defaults to an HTTP transport using
		// HTTPTransport.
		Transport Transport
		// HTTPTransport is the round tripper used by the default Transport.
		// Set it to control timeouts, proxies and TLS. Ignored when
		// Transport is set.
		HTTPTransport http.RoundTripper
		// Headers that will be added to every request, overriding the
		// defaults.
		Headers http.Header
		// CacheTTL bounds the age of cached formulas. Zero selects
		// DefaultCacheTTL; a negative TTL disables caching.
		CacheTTL time.Duration
		// FileOpener opens paths passed to UploadFile. Defaults to os.Open.
		FileOpener FileOpener
		// Debug enables request and response traces.
		Debug bool
		// Logger receives debug traces at V(1). Defaults to a text logger on
		// stderr when Debug is set.
		Logger logr.Logger
	}

	// Client is a Formulaic API client. It is safe for concurrent use.
	Client struct {
		baseURL   *url.URL
		headers   http.Header
		transport Transport
		formulas  *cache.Cache[json.RawMessage]
		open      FileOpener
		logger    logr.Logger
	}
)

// NewClient constructs a client from the given config.
func NewClient(cfg Config) (*Client, error) {
	// This value must be provided by the user.
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultURL
	}
	baseURL, err := apihttp.ParseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if cfg.Transport == nil {
		cfg.Transport = apihttp.NewClient(cfg.HTTPTransport)
	}
	switch {
	case cfg.CacheTTL == 0:
		cfg.CacheTTL = DefaultCacheTTL
	case cfg.CacheTTL < 0:
		cfg.CacheTTL = 0
	}
	if cfg.FileOpener == nil {
		cfg.FileOpener = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}

	logger := logr.Discard()
	if cfg.Debug {
		logger = cfg.Logger
		if logger.GetSink() == nil {
			l, err := ilogr.New(&ilogr.Config{Verbosity: 1})
			if err != nil {
				return nil, err
			}
			logger = l.Logger
		}
	}

	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+cfg.APIKey)
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	headers.Set("User-Agent", userAgent)
	for k, v := range cfg.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	return &Client{
		baseURL:   baseURL,
		headers:   headers,
		transport: cfg.Transport,
		formulas:  cache.New[json.RawMessage](cfg.CacheTTL),
		open:      cfg.FileOpener,
		logger:    logger.WithName("formulaic"),
	}, nil
}

// BaseURL returns the base URL of the API.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() http.Header { return c.headers.Clone() }

func (c *Client) endpoint(segments ...string) string {
	return apihttp.JoinPath(c.baseURL, segments...)
}

// send issues a request with the default headers, overridden by any given
// headers.
func (c *Client) send(ctx context.Context, method, u string, body io.Reader, override http.Header) (json.RawMessage, error) {
	headers := c.headers.Clone()
	for k, v := range override {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	requestID := uuid.NewString()
	headers.Set("X-Request-ID", requestID)

	logger := c.logger.WithValues("request_id", requestID)
	logger.V(1).Info("sending request", "method", method, "url", u)

	resp, err := c.transport.Request(ctx, method, u, body, headers)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			logger.V(1).Info("request failed", "url", u, "status", httpErr.StatusCode, "status_text", httpErr.Status, "message", httpErr.Message)
		} else {
			logger.V(1).Info("request failed", "url", u, "error", err.Error())
		}
		return nil, err
	}
	logger.V(1).Info("received response", "url", u, "bytes", len(resp))
	return resp, nil
}

// call sends a request on behalf of op and decodes the response into T. Any
// failure is wrapped in an *OperationError for op.
func call[T any](ctx context.Context, c *Client, op Op, method string, body any, segments ...string) (T, error) {
	var zero T

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, &OperationError{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
		r = bytes.NewReader(b)
	}
	raw, err := c.send(ctx, method, c.endpoint(segments...), r, nil)
	if err != nil {
		return zero, &OperationError{Op: op, Err: err}
	}
	v, err := decode[T](raw)
	if err != nil {
		return zero, &OperationError{Op: op, Err: err}
	}
	return v, nil
}

// decode unmarshals a response body into T. Numbers are kept as json.Number
// so large numeric IDs survive intact. An empty body decodes to the zero
// value.
func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return v, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}
