// ABOUTME: Tests for asset-to-platform resolution and OS detection from platform strings.
// ABOUTME: Covers the three-platform happy path, missing keywords, ordering and last-match-wins.
package releases

import "testing"

func TestResolveAllPlatforms(t *testing.T) {
	rel := &Release{
		TagName: "v1.2.0",
		Assets: []Asset{
			{Name: "app-windows.zip", BrowserDownloadURL: "https://dl.example/app-windows.zip"},
			{Name: "app-macos.zip", BrowserDownloadURL: "https://dl.example/app-macos.zip"},
			{Name: "app-linux.AppImage", BrowserDownloadURL: "https://dl.example/app-linux.AppImage"},
		},
	}

	d := Resolve(rel)

	if d.Version != "v1.2.0" {
		t.Errorf("expected version v1.2.0, got %q", d.Version)
	}
	if d.Windows != "https://dl.example/app-windows.zip" {
		t.Errorf("unexpected windows url %q", d.Windows)
	}
	if d.MacOS != "https://dl.example/app-macos.zip" {
		t.Errorf("unexpected macos url %q", d.MacOS)
	}
	if d.Linux != "https://dl.example/app-linux.AppImage" {
		t.Errorf("unexpected linux url %q", d.Linux)
	}
}

func TestResolveMissingPlatform(t *testing.T) {
	rel := &Release{
		TagName: "v1.0.0",
		Assets: []Asset{
			{Name: "app-windows.zip", BrowserDownloadURL: "https://dl.example/w"},
			{Name: "checksums.txt", BrowserDownloadURL: "https://dl.example/sums"},
		},
	}

	d := Resolve(rel)

	if d.MacOS != "" || d.Linux != "" {
		t.Errorf("expected macos and linux unset, got %+v", d)
	}
	if d.URL(OSWindows) != "https://dl.example/w" {
		t.Errorf("expected windows url, got %q", d.URL(OSWindows))
	}
}

func TestResolveCaseInsensitiveAndLastWins(t *testing.T) {
	rel := &Release{
		Assets: []Asset{
			{Name: "App-LINUX-old.tar.gz", BrowserDownloadURL: "first"},
			{Name: "app-Linux.AppImage", BrowserDownloadURL: "second"},
		},
	}

	d := Resolve(rel)

	if d.Linux != "second" {
		t.Errorf("expected last linux asset to win, got %q", d.Linux)
	}
}

func TestResolveKeywordPrecedence(t *testing.T) {
	// An asset naming two platforms is assigned to the first keyword checked.
	rel := &Release{
		Assets: []Asset{
			{Name: "bundle-windows-linux.zip", BrowserDownloadURL: "both"},
		},
	}

	d := Resolve(rel)

	if d.Windows != "both" {
		t.Errorf("expected windows to claim the asset, got %+v", d)
	}
	if d.Linux != "" {
		t.Errorf("expected linux to stay unset, got %q", d.Linux)
	}
}

func TestResolveNilRelease(t *testing.T) {
	d := Resolve(nil)
	if !d.Empty() {
		t.Errorf("expected empty downloads, got %+v", d)
	}
}

func TestDetectOS(t *testing.T) {
	tests := []struct {
		platform string
		want     OS
	}{
		{"Win32", OSWindows},
		{`"Windows"`, OSWindows},
		{"MacIntel", OSMacOS},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4)", OSMacOS},
		{"Linux x86_64", OSLinux},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0", OSLinux},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", OSWindows},
		{"iPhone", OSUnknown},
		{"", OSUnknown},
	}
	for _, tt := range tests {
		if got := DetectOS(tt.platform); got != tt.want {
			t.Errorf("DetectOS(%q) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		name string
		want OS
	}{
		{"darwin", OSMacOS},
		{"Darwin", OSMacOS},
		{"windows", OSWindows},
		{"linux", OSLinux},
	}
	for _, tt := range tests {
		if got := DetectOS(NormalizePlatform(tt.name)); got != tt.want {
			t.Errorf("DetectOS(NormalizePlatform(%q)) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOSLabel(t *testing.T) {
	if OSMacOS.Label() != "macOS" {
		t.Errorf("expected macOS label, got %q", OSMacOS.Label())
	}
	if len(Platforms) != 3 || Platforms[0] != OSWindows || Platforms[2] != OSLinux {
		t.Errorf("unexpected platform order %v", Platforms)
	}
}
