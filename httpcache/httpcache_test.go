package httpcache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestURLToKey(t *testing.T) {
	key1 := URLToKey("https://example.com/a")
	key2 := URLToKey("https://example.com/b")

	if key1 == key2 {
		t.Error("different URLs should produce different keys")
	}
	if key1 != URLToKey("https://example.com/a") {
		t.Error("same URL should produce the same key")
	}
	if len(key1) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(key1))
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{URL: "https://example.com", StatusCode: 404}
	want := "HTTP 404 fetching https://example.com"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate_limited", &HTTPError{StatusCode: 429}, true},
		{"server_error", &HTTPError{StatusCode: 500}, true},
		{"bad_gateway", &HTTPError{StatusCode: 502}, true},
		{"not_found", &HTTPError{StatusCode: 404}, false},
		{"forbidden", &HTTPError{StatusCode: 403}, false},
		{"network_error", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFetchURLWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("hello")) //nolint:errcheck // test server
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	if err != nil {
		t.Fatalf("request creation failed: %v", err)
	}

	body, err := FetchURL(context.Background(), nil, server.Client(), req, nil)
	if err != nil {
		t.Fatalf("FetchURL failed: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("body = %q, want hello", body)
	}
}

func TestFetchURLNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	if err != nil {
		t.Fatalf("request creation failed: %v", err)
	}

	_, err = FetchURL(context.Background(), nil, server.Client(), req, nil)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", httpErr.StatusCode)
	}
}

func TestResolveShareLink(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("profile page")) //nolint:errcheck // test server
	}))
	defer final.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL+"/@someuser", http.StatusFound)
	}))
	defer redirector.Close()

	got := ResolveShareLink(context.Background(), nil, redirector.URL, nil)
	want := final.URL + "/@someuser"
	if got != want {
		t.Errorf("ResolveShareLink = %q, want %q", got, want)
	}
}

func TestResolveShareLinkNoRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("plain page")) //nolint:errcheck // test server
	}))
	defer server.Close()

	if got := ResolveShareLink(context.Background(), nil, server.URL, nil); got != server.URL {
		t.Errorf("ResolveShareLink = %q, want unchanged %q", got, server.URL)
	}
}
