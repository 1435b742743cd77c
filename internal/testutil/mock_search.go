// Package testutil provides testing utilities for the cardsearch client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// PageScript describes one scripted search page.
type PageScript struct {
	Names      []string
	TotalCards int
	HasMore    bool
}

// MockUpstream is a configurable mock of the upstream card API.
type MockUpstream struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	scripts  map[string][]PageScript // key: query "\x00" order

	// Tracking
	RequestCount int
	PagesServed  []int
}

// NewMockUpstream creates a mock upstream server.
func NewMockUpstream() *MockUpstream {
	mock := &MockUpstream{
		handlers: make(map[string]http.HandlerFunc),
		scripts:  make(map[string][]PageScript),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}
		if r.URL.Path == "/cards/search" {
			mock.searchHandler(w, r)
			return
		}

		writeError(w, http.StatusNotFound, "No such endpoint")
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockUpstream) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a specific path.
func (m *MockUpstream) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetSearchScript scripts the pages served for a (query, order) pair.
func (m *MockUpstream) SetSearchScript(query, order string, pages []PageScript) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[query+"\x00"+order] = pages
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockUpstream) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPagesServed returns the page numbers served, in order.
func (m *MockUpstream) GetPagesServed() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.PagesServed...)
}

func (m *MockUpstream) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	order := r.URL.Query().Get("order")
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid page")
			return
		}
		page = n
	}

	m.mu.Lock()
	script, ok := m.scripts[q+"\x00"+order]
	if ok && page >= 1 && page <= len(script) {
		m.PagesServed = append(m.PagesServed, page)
	}
	m.mu.Unlock()

	if !ok || page < 1 || page > len(script) {
		writeError(w, http.StatusNotFound, "Your query didn't match any cards")
		return
	}

	ps := script[page-1]
	cards := make([]map[string]any, 0, len(ps.Names))
	for i, name := range ps.Names {
		cards = append(cards, map[string]any{
			"id":   fmt.Sprintf("%s-%d-%d", name, page, i),
			"name": name,
			"set":  "tst",
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"object":      "list",
		"data":        cards,
		"total_cards": ps.TotalCards,
		"has_more":    ps.HasMore,
	})
}

func writeError(w http.ResponseWriter, status int, details string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"object":  "error",
		"status":  status,
		"details": details,
	})
}
