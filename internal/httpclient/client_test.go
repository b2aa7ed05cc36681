package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"restload/internal/catalog"
	"restload/internal/httpclient"
)

func TestNewClientTimeout(t *testing.T) {
	c := httpclient.New(10 * time.Second)
	if c.Timeout != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %s", c.Timeout)
	}

	c = httpclient.New(-1)
	if c.Timeout != 0 {
		t.Fatalf("negative timeout should normalize to 0, got %s", c.Timeout)
	}
}

func TestResolveURL(t *testing.T) {
	cases := []struct {
		base string
		path string
		want string
	}{
		{"http://api.local", "/api/users", "http://api.local/api/users"},
		{"http://api.local/", "/health", "http://api.local/health"},
		{"https://api.local:8443", "/api/v1/products", "https://api.local:8443/api/v1/products"},
	}
	for _, tc := range cases {
		got, err := httpclient.ResolveURL(tc.base, catalog.Endpoint{Method: "GET", Path: tc.path})
		if err != nil {
			t.Fatalf("%s + %s: %v", tc.base, tc.path, err)
		}
		if got != tc.want {
			t.Errorf("%s + %s: got %s, want %s", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestNewRequestGET(t *testing.T) {
	req, err := httpclient.NewRequest(context.Background(), "http://api.local", catalog.Endpoint{Method: http.MethodGet, Path: "/api/users"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Method != http.MethodGet {
		t.Errorf("expected GET, got %s", req.Method)
	}
	if req.Header.Get("Accept") != "application/json" {
		t.Errorf("expected Accept header, got %q", req.Header.Get("Accept"))
	}
	if req.Body != nil {
		t.Error("GET request should have no body")
	}
}

func TestNewRequestDELETE(t *testing.T) {
	req, err := httpclient.NewRequest(context.Background(), "http://api.local", catalog.Endpoint{Method: http.MethodDelete, Path: "/api/users/123"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Body != nil {
		t.Error("DELETE request should have no body")
	}
	if req.Header.Get("Content-Type") != "" {
		t.Error("DELETE request should not set Content-Type")
	}
}

func TestNewRequestPayloads(t *testing.T) {
	cases := []struct {
		method string
		want   string
	}{
		{http.MethodPost, `{"name":"Test User","email":"test@example.com"}`},
		{http.MethodPut, `{"name":"Updated User","email":"updated@example.com"}`},
	}
	for _, tc := range cases {
		req, err := httpclient.NewRequest(context.Background(), "http://api.local", catalog.Endpoint{Method: tc.method, Path: "/api/users"})
		if err != nil {
			t.Fatal(err)
		}
		if req.Header.Get("Content-Type") != "application/json" {
			t.Errorf("%s: expected JSON content type", tc.method)
		}
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != tc.want {
			t.Errorf("%s: got body %s, want %s", tc.method, body, tc.want)
		}
	}
}

func TestNewRequestBadBase(t *testing.T) {
	_, err := httpclient.NewRequest(context.Background(), "http://bad host/", catalog.Endpoint{Method: "GET", Path: "/x"})
	if err == nil {
		t.Fatal("expected error for unparseable base URL")
	}
}
