// ABOUTME: View model for the download page: version line and one button per platform.
// ABOUTME: Also extracts the visitor's platform string from the request for OS detection.
package web

import (
	"net/http"
	"strings"

	"github.com/2389-research/mimicsite/releases"
)

// DownloadButton is one platform button on the download page.
type DownloadButton struct {
	OS        releases.OS
	Label     string
	URL       string
	Icon      string
	Preferred bool
}

// Enabled reports whether the platform has a resolved asset.
func (b DownloadButton) Enabled() bool {
	return b.URL != ""
}

// Href is the link target; disabled buttons point at "#".
func (b DownloadButton) Href() string {
	if b.URL == "" {
		return "#"
	}
	return b.URL
}

// Class returns the CSS classes for the button. Only an enabled button can
// be highlighted as preferred.
func (b DownloadButton) Class() string {
	classes := []string{"download-btn", "download-" + string(b.OS)}
	switch {
	case !b.Enabled():
		classes = append(classes, "disabled")
	case b.Preferred:
		classes = append(classes, "preferred")
	}
	return strings.Join(classes, " ")
}

// DownloadView is everything the download template renders.
type DownloadView struct {
	Version   string
	Preferred releases.OS
	Buttons   []DownloadButton
}

// VersionText is the line under the heading.
func (v DownloadView) VersionText() string {
	if v.Version == "" {
		return "Loading version..."
	}
	return "Latest version: " + v.Version
}

// NewDownloadView builds the view for resolved downloads and the visitor's OS.
func NewDownloadView(d releases.Downloads, preferred releases.OS) DownloadView {
	view := DownloadView{
		Version:   d.Version,
		Preferred: preferred,
	}
	for _, platform := range releases.Platforms {
		view.Buttons = append(view.Buttons, DownloadButton{
			OS:        platform,
			Label:     platform.Label(),
			URL:       d.URL(platform),
			Icon:      "/static/img/" + string(platform) + ".svg",
			Preferred: platform == preferred,
		})
	}
	return view
}

// platformString picks the best available hint of the visitor's platform:
// an explicit ?os= override (GOOS names accepted), then the Sec-CH-UA-Platform client hint, then
// the User-Agent.
func platformString(r *http.Request) string {
	if v := r.URL.Query().Get("os"); v != "" {
		return releases.NormalizePlatform(v)
	}
	if v := strings.Trim(r.Header.Get("Sec-CH-UA-Platform"), `" `); v != "" {
		return v
	}
	return r.UserAgent()
}
