package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockAPI is a configurable stand-in for the backend. Handlers are
// registered per path prefix; unmatched requests return 404. Every
// request's path and Authorization header are recorded for assertions.
type MockAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
	auths    []string
}

// NewMockAPI starts a mock backend. It is shut down via t.Cleanup.
func NewMockAPI(t *testing.T) *MockAPI {
	t.Helper()
	m := &MockAPI{
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the mock server's base URL
func (m *MockAPI) URL() string {
	return m.Server.URL
}

// Handle registers a handler for all requests whose path starts with prefix
func (m *MockAPI) Handle(prefix string, fn http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[prefix] = fn
}

// HandleJSON registers a handler that replies 200 with the given value
func (m *MockAPI) HandleJSON(prefix string, v interface{}) {
	m.Handle(prefix, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})
}

// Calls returns how many requests matched the given prefix
func (m *MockAPI) Calls(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for path, count := range m.calls {
		if strings.HasPrefix(path, prefix) {
			n += count
		}
	}
	return n
}

// TotalCalls returns how many requests the server received in total
func (m *MockAPI) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, count := range m.calls {
		n += count
	}
	return n
}

// LastAuth returns the Authorization header of the most recent request
func (m *MockAPI) LastAuth() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.auths) == 0 {
		return ""
	}
	return m.auths[len(m.auths)-1]
}

func (m *MockAPI) serve(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.calls[r.URL.Path]++
	m.auths = append(m.auths, r.Header.Get("Authorization"))
	var handler http.HandlerFunc
	best := ""
	for prefix, fn := range m.handlers {
		if strings.HasPrefix(r.URL.Path, prefix) && len(prefix) > len(best) {
			best = prefix
			handler = fn
		}
	}
	m.mu.Unlock()

	if handler == nil {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}
