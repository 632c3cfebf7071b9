// ABOUTME: Release and asset types decoded from the GitHub "latest release" endpoint.
// ABOUTME: Only the fields the download page and snapshot store consume are modeled.
package releases

import (
	"context"
	"time"
)

// Asset is a downloadable file attached to a tagged release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	ContentType        string `json:"content_type,omitempty"`
	Size               int64  `json:"size,omitempty"`
}

// Release is a tagged release with its assets.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name,omitempty"`
	HTMLURL     string    `json:"html_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Fetcher returns the latest published release. Client, Cache and
// SnapshotFetcher all satisfy it so they can be stacked.
type Fetcher interface {
	Latest(ctx context.Context) (*Release, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (*Release, error)

// Latest calls f(ctx).
func (f FetcherFunc) Latest(ctx context.Context) (*Release, error) {
	return f(ctx)
}
