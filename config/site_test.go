// ABOUTME: Tests for default navigation and YAML site parsing.
package config

import "testing"

func TestDefaultSiteNav(t *testing.T) {
	site := DefaultSite()

	want := []NavLink{
		{Name: "Home", Path: "/"},
		{Name: "Download", Path: "/download"},
		{Name: "Contact", Path: "/contact"},
		{Name: "Source Code", Path: "https://github.com/Andriy-Luchko/MIMIC-Project"},
	}
	if len(site.Nav) != len(want) {
		t.Fatalf("expected %d nav links, got %d", len(want), len(site.Nav))
	}
	for i := range want {
		if site.Nav[i] != want[i] {
			t.Errorf("nav[%d] = %+v, want %+v", i, site.Nav[i], want[i])
		}
	}
}

func TestNavLinkExternal(t *testing.T) {
	if (NavLink{Path: "/download"}).External() {
		t.Error("expected internal link")
	}
	if !(NavLink{Path: "https://github.com/x/y"}).External() {
		t.Error("expected https link to be external")
	}
	if !(NavLink{Path: "http://example.com"}).External() {
		t.Error("expected http link to be external")
	}
}

func TestParseSiteReplacesNav(t *testing.T) {
	data := []byte(`
nav:
  - name: Home
    path: /
  - name: Docs
    path: https://docs.example.com
`)
	site, err := ParseSite(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(site.Nav) != 2 || site.Nav[1].Name != "Docs" {
		t.Errorf("expected nav replaced, got %+v", site.Nav)
	}
	if site.Brand != "MedData Query" {
		t.Errorf("expected default brand kept, got %q", site.Brand)
	}
}

func TestParseSiteRejectsIncompleteNav(t *testing.T) {
	data := []byte("nav:\n  - name: Home\n")
	if _, err := ParseSite(data); err == nil {
		t.Fatal("expected error for nav entry without path")
	}
}

func TestParseSiteMalformed(t *testing.T) {
	if _, err := ParseSite([]byte("brand: [unclosed")); err == nil {
		t.Fatal("expected YAML error")
	}
}
