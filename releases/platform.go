// ABOUTME: Operating system detection from a browser platform string.
// ABOUTME: Maps "win"/"mac"/"linux" substrings to the three download targets.
package releases

import "strings"

// OS identifies one of the three download targets.
type OS string

const (
	OSUnknown OS = ""
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
)

// Platforms lists the download targets in display order.
var Platforms = []OS{OSWindows, OSMacOS, OSLinux}

// Label returns the human-readable platform name.
func (o OS) Label() string {
	switch o {
	case OSWindows:
		return "Windows"
	case OSMacOS:
		return "macOS"
	case OSLinux:
		return "Linux"
	default:
		return "Unknown"
	}
}

// NormalizePlatform maps GOOS-style names onto the names DetectOS
// understands. "darwin" would otherwise match "win".
func NormalizePlatform(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), "darwin") {
		return string(OSMacOS)
	}
	return name
}

// DetectOS guesses the visitor's operating system from a platform string
// such as navigator.platform, a Sec-CH-UA-Platform hint or a User-Agent.
// Checks run in order, so "Darwin; Win64" resolves to Windows.
func DetectOS(platform string) OS {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "win"):
		return OSWindows
	case strings.Contains(p, "mac"):
		return OSMacOS
	case strings.Contains(p, "linux"):
		return OSLinux
	default:
		return OSUnknown
	}
}
