// ABOUTME: Site identity and navigation, with optional overrides from a YAML file.
// ABOUTME: Fields left out of the file keep their defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/2389-research/mimicsite/releases"
	"gopkg.in/yaml.v3"
)

// NavLink is one entry of the shared header navigation.
type NavLink struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// External reports whether the link leaves the site.
func (l NavLink) External() bool {
	return strings.HasPrefix(l.Path, "http")
}

// Site holds the branding and navigation shared by every page.
type Site struct {
	Brand       string    `yaml:"brand"`
	ProductName string    `yaml:"product_name"`
	Repo        string    `yaml:"repo"`
	Nav         []NavLink `yaml:"nav"`
}

// DefaultSite returns the built-in site settings.
func DefaultSite() Site {
	return Site{
		Brand:       "MedData Query",
		ProductName: "MimicQuery",
		Repo:        releases.DefaultRepo,
		Nav: []NavLink{
			{Name: "Home", Path: "/"},
			{Name: "Download", Path: "/download"},
			{Name: "Contact", Path: "/contact"},
			{Name: "Source Code", Path: "https://github.com/" + releases.DefaultRepo},
		},
	}
}

// LoadSiteFile reads a YAML site file and merges it over DefaultSite.
// A non-empty nav list replaces the default list entirely.
func LoadSiteFile(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("read site file: %w", err)
	}
	return ParseSite(data)
}

// ParseSite decodes YAML site overrides and merges them over DefaultSite.
func ParseSite(data []byte) (Site, error) {
	var override Site
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Site{}, fmt.Errorf("parse site file: %w", err)
	}

	site := DefaultSite()
	if override.Brand != "" {
		site.Brand = override.Brand
	}
	if override.ProductName != "" {
		site.ProductName = override.ProductName
	}
	if override.Repo != "" {
		site.Repo = override.Repo
	}
	if len(override.Nav) > 0 {
		for i, link := range override.Nav {
			if link.Name == "" || link.Path == "" {
				return Site{}, fmt.Errorf("parse site file: nav entry %d needs name and path", i)
			}
		}
		site.Nav = override.Nav
	}
	return site, nil
}
