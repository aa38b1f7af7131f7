package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strconv"
	"strings"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type (
	// Client performs requests against the Formulaic API and hands back the
	// raw JSON body of successful responses. Headers are the caller's
	// concern; the client sends exactly what it is given.
	Client struct {
		http *http.Client
	}

	// HTTPError is returned when the API responds with a non-2xx status.
	HTTPError struct {
		// StatusCode is the numeric status, e.g. 404.
		StatusCode int
		// Status is the status text, e.g. "Not Found".
		Status string
		// Message is the explanation supplied by the server, if any.
		Message string
	}
)

// NewClient constructs a client that sends requests via the given round
// tripper. Timeouts, proxies and TLS are properties of the round tripper. A
// nil round tripper selects DefaultTransport.
func NewClient(transport http.RoundTripper) *Client {
	if transport == nil {
		transport = DefaultTransport
	}
	return &Client{http: &http.Client{Transport: transport}}
}

// Request sends a request and returns the response body. A successful
// response with an empty body returns nil.
//
// The provided ctx must be non-nil. If it is canceled or times out, ctx.Err()
// is returned.
func (c *Client) Request(ctx context.Context, method, url string, body io.Reader, headers http.Header) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	maps.Copy(req.Header, headers)

	resp, err := c.http.Do(req)
	if err != nil {
		// If we got an error, and the context has been canceled,
		// the context's error is probably more useful.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			return nil, err
		}
	}
	defer resp.Body.Close()

	if err := checkResponseCode(resp); err != nil {
		return nil, err
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return json.RawMessage(b), nil
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%d - %s", e.StatusCode, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// checkResponseCode returns an *HTTPError for any non-2xx response.
func checkResponseCode(r *http.Response) error {
	if r.StatusCode >= 200 && r.StatusCode <= 299 {
		return nil
	}
	status := strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)+" ")
	if status == "" || status == r.Status {
		status = http.StatusText(r.StatusCode)
	}
	return &HTTPError{
		StatusCode: r.StatusCode,
		Status:     status,
		Message:    readErrorMessage(io.LimitReader(r.Body, maxErrorBody)),
	}
}

// readErrorMessage extracts an explanation from an error response body. JSON
// bodies are searched for the conventional message fields; anything else is
// returned as trimmed text.
func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
		Errors  []struct {
			Message string `json:"message"`
			Title   string `json:"title"`
			Detail  string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return string(b)
	}
	if payload.Message != "" {
		return payload.Message
	}
	switch e := payload.Error.(type) {
	case string:
		if e != "" {
			return e
		}
	case map[string]any:
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg
		}
	}
	var errs []string
	for _, e := range payload.Errors {
		switch {
		case e.Message != "":
			errs = append(errs, e.Message)
		case e.Detail != "":
			errs = append(errs, fmt.Sprintf("%s: %s", e.Title, e.Detail))
		case e.Title != "":
			errs = append(errs, e.Title)
		}
	}
	return strings.Join(errs, "\n")
}
