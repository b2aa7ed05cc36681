// Package httpclient builds the HTTP client and per-dispatch requests.
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"restload/internal/catalog"
)

// Fixed JSON payloads sent on mutating methods. The targets are synthetic;
// the bodies only need to be well-formed.
const (
	createPayload = `{"name":"Test User","email":"test@example.com"}`
	updatePayload = `{"name":"Updated User","email":"updated@example.com"}`
)

// New returns an HTTP client with a tuned transport and the given
// per-request timeout. The timeout covers connect, request, and body read.
func New(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// ResolveURL joins an endpoint path onto the base target URL.
func ResolveURL(base string, ep catalog.Endpoint) (string, error) {
	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("invalid base target %q: %w", base, err)
	}
	rel, err := url.Parse(ep.Path)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint path %q: %w", ep.Path, err)
	}
	return baseURL.ResolveReference(rel).String(), nil
}

// NewRequest builds the method-appropriate request for an endpoint:
// GET carries an Accept header and no body, DELETE carries nothing, and
// POST/PUT carry the fixed JSON payloads.
func NewRequest(ctx context.Context, base string, ep catalog.Endpoint) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target, err := ResolveURL(base, ep)
	if err != nil {
		return nil, err
	}

	var body string
	switch ep.Method {
	case http.MethodPost:
		body = createPayload
	case http.MethodPut:
		body = updatePayload
	}

	var req *http.Request
	if body != "" {
		req, err = http.NewRequestWithContext(ctx, ep.Method, target, strings.NewReader(body))
	} else {
		req, err = http.NewRequestWithContext(ctx, ep.Method, target, nil)
	}
	if err != nil {
		return nil, err
	}

	switch ep.Method {
	case http.MethodGet:
		req.Header.Set("Accept", "application/json")
	case http.MethodPost, http.MethodPut:
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
