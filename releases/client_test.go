// ABOUTME: Tests for the GitHub releases client against an httptest server.
// ABOUTME: Covers decoding, request headers, 404 as ErrNoRelease, other statuses and malformed JSON.
package releases

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const latestJSON = `{
	"tag_name": "v0.3.1",
	"name": "MimicQuery 0.3.1",
	"html_url": "https://github.com/Andriy-Luchko/MIMIC-Project/releases/tag/v0.3.1",
	"published_at": "2025-03-01T12:00:00Z",
	"assets": [
		{"name": "MimicQuery-windows.zip", "browser_download_url": "https://dl.example/w.zip", "size": 10},
		{"name": "MimicQuery-macos.zip", "browser_download_url": "https://dl.example/m.zip", "size": 20}
	]
}`

func newReleaseServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var seen http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestClientLatest(t *testing.T) {
	srv, seen := newReleaseServer(t, http.StatusOK, latestJSON)
	client := NewClient(ClientConfig{BaseURL: srv.URL, Repo: "acme/tool", Token: "secret", UserAgent: "mimicsite/test"})

	rel, err := client.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rel.TagName != "v0.3.1" {
		t.Errorf("expected tag v0.3.1, got %q", rel.TagName)
	}
	if len(rel.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(rel.Assets))
	}
	if rel.Assets[1].BrowserDownloadURL != "https://dl.example/m.zip" {
		t.Errorf("unexpected asset url %q", rel.Assets[1].BrowserDownloadURL)
	}
	if rel.PublishedAt.IsZero() {
		t.Error("expected published_at to be decoded")
	}

	if seen.URL.Path != "/repos/acme/tool/releases/latest" {
		t.Errorf("unexpected request path %q", seen.URL.Path)
	}
	if got := seen.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", got)
	}
	if got := seen.Header.Get("User-Agent"); got != "mimicsite/test" {
		t.Errorf("expected user agent, got %q", got)
	}
	if got := seen.Header.Get("Accept"); got != "application/vnd.github+json" {
		t.Errorf("unexpected accept header %q", got)
	}
}

func TestClientDefaults(t *testing.T) {
	client := NewClient(ClientConfig{})
	if client.Repo() != DefaultRepo {
		t.Errorf("expected default repo, got %q", client.Repo())
	}
	want := "https://api.github.com/repos/Andriy-Luchko/MIMIC-Project/releases/latest"
	if client.LatestURL() != want {
		t.Errorf("expected %q, got %q", want, client.LatestURL())
	}
}

func TestClientNoAuthorizationWithoutToken(t *testing.T) {
	srv, seen := newReleaseServer(t, http.StatusOK, latestJSON)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	if _, err := client.Latest(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := seen.Header.Get("Authorization"); got != "" {
		t.Errorf("expected no authorization header, got %q", got)
	}
}

func TestClientNotFound(t *testing.T) {
	srv, _ := newReleaseServer(t, http.StatusNotFound, `{"message":"Not Found"}`)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := client.Latest(context.Background())
	if !errors.Is(err, ErrNoRelease) {
		t.Fatalf("expected ErrNoRelease, got %v", err)
	}
}

func TestClientStatusError(t *testing.T) {
	srv, _ := newReleaseServer(t, http.StatusForbidden, `{"message":"API rate limit exceeded"}`)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := client.Latest(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", statusErr.StatusCode)
	}
	if statusErr.Message != "API rate limit exceeded" {
		t.Errorf("expected api message, got %q", statusErr.Message)
	}
}

func TestClientMalformedJSON(t *testing.T) {
	srv, _ := newReleaseServer(t, http.StatusOK, `{"tag_name": `)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	if _, err := client.Latest(context.Background()); err == nil {
		t.Fatal("expected decode error for malformed JSON")
	}
}

func TestClientCanceledContext(t *testing.T) {
	srv, _ := newReleaseServer(t, http.StatusOK, latestJSON)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Latest(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
