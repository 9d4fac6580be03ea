// Package apitest provides a scripted fake of the backend REST API.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"campusintelli/internal/api"
)

// Call is one request received by the fake.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
	Raw    []byte
}

// Responder produces the status and JSON body for a call.
type Responder func(c Call) (int, any)

// Backend is an httptest server mounted at /api.
type Backend struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Responder
	calls  []Call
}

// New starts a fake backend closed at the end of the test.
func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{routes: make(map[string]Responder)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// On answers method+path with a fixed status and body.
func (b *Backend) On(method, path string, status int, body any) {
	b.Handle(method, path, func(Call) (int, any) { return status, body })
}

// Handle answers method+path with r.
func (b *Backend) Handle(method, path string, r Responder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = r
}

// Calls returns every request received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsTo returns the requests received for method+path.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls, keeping routes.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// Client returns an api.Client pointed at the fake.
func (b *Backend) Client(opts ...api.Option) *api.Client {
	return api.New(b.URL+"/api", opts...)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	c := Call{
		Method: r.Method,
		Path:   strings.TrimPrefix(r.URL.Path, "/api"),
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Raw:    raw,
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") && len(raw) > 0 {
		_ = json.Unmarshal(raw, &c.Body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, c)
	resp, ok := b.routes[c.Method+" "+c.Path]
	b.mu.Unlock()

	status, body := http.StatusNotFound, any(map[string]string{"error": "not found"})
	if ok {
		status, body = resp(c)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if s, isString := body.(string); isString {
		_, _ = io.WriteString(w, s)
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}
