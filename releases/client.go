// ABOUTME: HTTP client for the GitHub releases API ("latest release" for one repository).
// ABOUTME: Issues a single GET per call with no retries; non-2xx and malformed bodies are errors.
package releases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"
	// DefaultRepo is the repository whose releases the site advertises.
	DefaultRepo = "Andriy-Luchko/MIMIC-Project"
	// DefaultTimeout bounds a single release fetch.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// ErrNoRelease is returned when the repository has no published release.
var ErrNoRelease = errors.New("no published release")

// StatusError reports a non-2xx response from the releases API.
type StatusError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("releases api %s: status %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("releases api %s: status %d", e.URL, e.StatusCode)
}

// ClientConfig configures a Client. Zero values fall back to the defaults.
type ClientConfig struct {
	BaseURL    string
	Repo       string // "owner/name"
	Token      string // optional bearer token, raises the rate limit
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches the latest release of one repository.
type Client struct {
	baseURL   string
	repo      string
	token     string
	userAgent string
	http      *http.Client
}

// NewClient creates a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Repo == "" {
		cfg.Repo = DefaultRepo
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "mimicsite"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		repo:      strings.Trim(cfg.Repo, "/"),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      hc,
	}
}

// Repo returns the "owner/name" this client reads from.
func (c *Client) Repo() string {
	return c.repo
}

// LatestURL returns the endpoint queried by Latest.
func (c *Client) LatestURL() string {
	return fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repo)
}

// Latest fetches and decodes the latest release.
func (c *Client) Latest(ctx context.Context) (*Release, error) {
	url := c.LatestURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", c.repo, ErrNoRelease)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Message:    apiMessage(body),
		}
	}

	var rel Release
	if err := json.NewDecoder(body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode latest release: %w", err)
	}
	return &rel, nil
}

// apiMessage extracts the "message" field GitHub puts in error bodies.
func apiMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
