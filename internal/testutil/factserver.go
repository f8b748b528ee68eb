// Package testutil provides shared test fixtures for the number classifier.
// It offers a fake Numbers API so fact-fetching code can be tested without
// network access.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// FactRequest records a single request made to a FactServer.
type FactRequest struct {
	Number string
	Type   string
	Query  string
}

// FactServer is an in-process fake of the Numbers API. Known numbers answer
// with their configured text; unknown numbers answer with found=false.
//
// Example:
//
//	fs := testutil.NewFactServer(t).
//		WithFact("371", "371 is a narcissistic number.")
//	cfg := facts.Config{Provider: "numbersapi", BaseURL: fs.URL()}
type FactServer struct {
	server   *httptest.Server
	facts    map[string]string
	requests []FactRequest
	status   int
	mu       sync.Mutex
}

// NewFactServer starts a fake Numbers API. It is closed when the test ends.
func NewFactServer(t *testing.T) *FactServer {
	t.Helper()

	fs := &FactServer{facts: make(map[string]string)}

	r := chi.NewRouter()
	r.Get("/{number}/{type}", fs.handleFact)
	fs.server = httptest.NewServer(r)
	t.Cleanup(fs.server.Close)

	return fs
}

// WithFact registers the fact text returned for number.
func (fs *FactServer) WithFact(number, text string) *FactServer {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.facts[number] = text
	return fs
}

// FailWith makes every subsequent request answer with status.
func (fs *FactServer) FailWith(status int) *FactServer {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.status = status
	return fs
}

// URL returns the base URL of the fake API.
func (fs *FactServer) URL() string {
	return fs.server.URL
}

// Requests returns a copy of the requests received so far.
func (fs *FactServer) Requests() []FactRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]FactRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

func (fs *FactServer) handleFact(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	factType := chi.URLParam(r, "type")

	fs.mu.Lock()
	fs.requests = append(fs.requests, FactRequest{Number: number, Type: factType, Query: r.URL.RawQuery})
	status := fs.status
	text, found := fs.facts[number]
	fs.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !found {
		text = fmt.Sprintf("%s is an uninteresting number.", number)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"text":  text,
		"found": found,
		"type":  factType,
	})
}
