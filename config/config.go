// ABOUTME: Server configuration loaded from MIMICSITE_* environment variables.
// ABOUTME: Enforces that non-loopback binds are an explicit opt-in via MIMICSITE_ALLOW_REMOTE.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/2389-research/mimicsite/releases"
)

var (
	ErrNonLoopbackBind = errors.New(
		"MIMICSITE_BIND is a non-loopback address but MIMICSITE_ALLOW_REMOTE is not true; set MIMICSITE_ALLOW_REMOTE=true to serve publicly",
	)
	ErrInvalidDuration = errors.New("invalid duration")
)

// Config holds site server configuration.
type Config struct {
	Bind         string        // Listen address (MIMICSITE_BIND, default: 127.0.0.1:3000)
	AllowRemote  bool          // Allow non-loopback binds (MIMICSITE_ALLOW_REMOTE)
	APIBaseURL   string        // Releases API root (MIMICSITE_API_BASE_URL)
	GitHubToken  string        // Optional API token (MIMICSITE_GITHUB_TOKEN)
	CacheTTL     time.Duration // Release cache lifetime (MIMICSITE_CACHE_TTL, default: 5m)
	FetchTimeout time.Duration // Per-fetch timeout (MIMICSITE_FETCH_TIMEOUT, default: 10s)
	SnapshotDB   string        // SQLite snapshot path, empty disables (MIMICSITE_SNAPSHOT_DB)
	SiteFile     string        // YAML site overrides (MIMICSITE_SITE_FILE)
	Site         Site
}

// Option adjusts a Config after the environment is read and before the site
// file is loaded and the result validated. CLI flags arrive this way.
type Option func(*Config)

// WithBind overrides the listen address.
func WithBind(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Bind = addr
		}
	}
}

// WithAllowRemote opts into non-loopback binds.
func WithAllowRemote(allow bool) Option {
	return func(c *Config) {
		if allow {
			c.AllowRemote = true
		}
	}
}

// WithSiteFile overrides the YAML site file path.
func WithSiteFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.SiteFile = path
		}
	}
}

// WithSnapshotDB overrides the snapshot database path.
func WithSnapshotDB(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.SnapshotDB = path
		}
	}
}

// FromEnv loads configuration from MIMICSITE_* variables with defaults,
// applies opts and validates the result. The site file, when named, is
// merged over DefaultSite.
func FromEnv(opts ...Option) (*Config, error) {
	cfg := &Config{
		Bind:        envOrDefault("MIMICSITE_BIND", "127.0.0.1:3000"),
		AllowRemote: envBool("MIMICSITE_ALLOW_REMOTE"),
		APIBaseURL:  envOrDefault("MIMICSITE_API_BASE_URL", releases.DefaultBaseURL),
		GitHubToken: os.Getenv("MIMICSITE_GITHUB_TOKEN"),
		SnapshotDB:  os.Getenv("MIMICSITE_SNAPSHOT_DB"),
		SiteFile:    os.Getenv("MIMICSITE_SITE_FILE"),
		Site:        DefaultSite(),
	}

	var err error
	if cfg.CacheTTL, err = envDuration("MIMICSITE_CACHE_TTL", releases.DefaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = envDuration("MIMICSITE_FETCH_TIMEOUT", releases.DefaultTimeout); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.SiteFile != "" {
		site, err := LoadSiteFile(cfg.SiteFile)
		if err != nil {
			return nil, err
		}
		cfg.Site = site
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the bind address against AllowRemote. Only 127.0.0.0/8,
// ::1 and "localhost" count as loopback.
func (c *Config) Validate() error {
	if c.AllowRemote {
		return nil
	}
	host, _, err := net.SplitHostPort(c.Bind)
	if err != nil {
		return fmt.Errorf("MIMICSITE_BIND=%s: %w", c.Bind, err)
	}
	if host == "" {
		return fmt.Errorf("%w: MIMICSITE_BIND=%s", ErrNonLoopbackBind, c.Bind)
	}
	ip := net.ParseIP(host)
	switch {
	case ip != nil && ip.IsLoopback():
	case ip != nil:
		return fmt.Errorf("%w: MIMICSITE_BIND=%s", ErrNonLoopbackBind, c.Bind)
	case host == "localhost":
	default:
		return fmt.Errorf("%w: MIMICSITE_BIND=%s", ErrNonLoopbackBind, c.Bind)
	}
	return nil
}

// ClientConfig returns the releases client settings for this config.
func (c *Config) ClientConfig(userAgent string) releases.ClientConfig {
	return releases.ClientConfig{
		BaseURL:   c.APIBaseURL,
		Repo:      c.Site.Repo,
		Token:     c.GitHubToken,
		UserAgent: userAgent,
		Timeout:   c.FetchTimeout,
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func envDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidDuration, key, v)
	}
	return d, nil
}
