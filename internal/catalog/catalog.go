// Package catalog defines the fixed set of load-test endpoints and the
// random selector used to draw targets from it.
package catalog

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
)

// Endpoint is a static (method, path) pair used as a load-test target.
// The path is resolved against the configured base URL at dispatch time.
type Endpoint struct {
	Method string
	Path   string
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

// Default returns the built-in endpoint catalog. The mix deliberately
// includes paths that 404 so error handling stays exercised.
func Default() []Endpoint {
	return []Endpoint{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/users/123"},
		{http.MethodGet, "/api/users/456"},
		{http.MethodGet, "/api/users/789"},
		{http.MethodGet, "/api/v1/products"},
		{http.MethodGet, "/api/v1/products/abc-123"},
		{http.MethodGet, "/api/v2/products"},
		{http.MethodGet, "/api/v2/products/def-456"},
		{http.MethodGet, "/api/users/123/orders"},
		{http.MethodGet, "/api/users/456/orders/789"},
		{http.MethodGet, "/api/orders/550e8400-e29b-41d4-a716-446655440000"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/admin/dashboard"},
		{http.MethodGet, "/nonexistent"},
		{http.MethodPost, "/api/users"},
		{http.MethodPut, "/api/users/123"},
		{http.MethodDelete, "/api/users/123"},
	}
}

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Validate checks that every entry has a supported method and a usable path.
func Validate(endpoints []Endpoint) error {
	if len(endpoints) == 0 {
		return fmt.Errorf("endpoint catalog is empty")
	}
	for i, ep := range endpoints {
		method := strings.ToUpper(strings.TrimSpace(ep.Method))
		if !allowedMethods[method] {
			return fmt.Errorf("endpoint %d: unsupported method %q", i, ep.Method)
		}
		if strings.TrimSpace(ep.Path) == "" {
			return fmt.Errorf("endpoint %d: path is required", i)
		}
	}
	return nil
}

// Selector draws endpoints uniformly and independently at random.
// Safe for concurrent use by multiple workers.
type Selector struct {
	endpoints []Endpoint
	rnd       *rand.Rand
	mu        sync.Mutex
}

// NewSelector copies the catalog so later mutation of the input slice cannot
// affect a running test.
func NewSelector(endpoints []Endpoint, seed int64) (*Selector, error) {
	if err := Validate(endpoints); err != nil {
		return nil, err
	}
	owned := make([]Endpoint, len(endpoints))
	for i, ep := range endpoints {
		owned[i] = Endpoint{
			Method: strings.ToUpper(strings.TrimSpace(ep.Method)),
			Path:   strings.TrimSpace(ep.Path),
		}
	}
	return &Selector{
		endpoints: owned,
		rnd:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Pick returns a uniformly random endpoint. Repeats are expected; no state
// carries over between calls.
func (s *Selector) Pick() Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endpoints[s.rnd.Intn(len(s.endpoints))]
}

// Size returns the number of endpoints in the catalog.
func (s *Selector) Size() int {
	return len(s.endpoints)
}
