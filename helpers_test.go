package formulaic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testBaseURL   = "http://localhost:3000"
	testAPIKey    = "test-api-key"
	testFormulaID = "test-formula-id"
)

type (
	fakeCall struct {
		method  string
		url     string
		body    []byte
		headers http.Header
	}

	// fakeTransport records each request and answers with respond.
	fakeTransport struct {
		respond func(call fakeCall) (json.RawMessage, error)

		mu    sync.Mutex
		calls []fakeCall
	}
)

func (f *fakeTransport) Request(ctx context.Context, method, url string, body io.Reader, headers http.Header) (json.RawMessage, error) {
	call := fakeCall{method: method, url: url, headers: headers}
	if body != nil {
		b, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		call.body = b
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.respond == nil {
		return json.RawMessage(`{}`), nil
	}
	return f.respond(call)
}

func (f *fakeTransport) Calls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeCall(nil), f.calls...)
}

// respondWith answers every request with the given JSON.
func respondWith(body string) func(fakeCall) (json.RawMessage, error) {
	return func(fakeCall) (json.RawMessage, error) {
		return json.RawMessage(body), nil
	}
}

// failWith fails every request with err.
func failWith(err error) func(fakeCall) (json.RawMessage, error) {
	return func(fakeCall) (json.RawMessage, error) {
		return nil, err
	}
}

func newTestClient(t *testing.T, respond func(fakeCall) (json.RawMessage, error)) (*Client, *fakeTransport) {
	t.Helper()

	transport := &fakeTransport{respond: respond}
	client, err := NewClient(Config{
		APIKey:    testAPIKey,
		BaseURL:   testBaseURL,
		Transport: transport,
	})
	require.NoError(t, err)
	return client, transport
}
