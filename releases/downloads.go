// ABOUTME: Resolves release assets into per-platform download URLs by filename keyword.
// ABOUTME: An absent keyword leaves that platform's URL empty, which renders as a disabled button.
package releases

import "strings"

// Downloads is the per-platform view of a release.
type Downloads struct {
	Version string `json:"version"`
	Windows string `json:"windows,omitempty"`
	MacOS   string `json:"macos,omitempty"`
	Linux   string `json:"linux,omitempty"`
}

// Resolve maps asset names to platforms: "windows", then "macos", then
// "linux", matched case-insensitively. When several assets match the same
// platform the last one wins. A nil release resolves to the zero value.
func Resolve(rel *Release) Downloads {
	var d Downloads
	if rel == nil {
		return d
	}
	d.Version = rel.TagName
	for _, asset := range rel.Assets {
		name := strings.ToLower(asset.Name)
		switch {
		case strings.Contains(name, "windows"):
			d.Windows = asset.BrowserDownloadURL
		case strings.Contains(name, "macos"):
			d.MacOS = asset.BrowserDownloadURL
		case strings.Contains(name, "linux"):
			d.Linux = asset.BrowserDownloadURL
		}
	}
	return d
}

// URL returns the download URL for o, or "" if none was resolved.
func (d Downloads) URL(o OS) string {
	switch o {
	case OSWindows:
		return d.Windows
	case OSMacOS:
		return d.MacOS
	case OSLinux:
		return d.Linux
	default:
		return ""
	}
}

// Empty reports whether no version and no platform URL were resolved.
func (d Downloads) Empty() bool {
	return d == Downloads{}
}
