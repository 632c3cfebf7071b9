// ABOUTME: Lipgloss styles and rendering for the releases subcommand output.
// ABOUTME: The preferred platform row is marked and missing platforms read "not available".
package main

import (
	"strings"

	"github.com/2389-research/mimicsite/releases"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	versionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	labelStyle     = lipgloss.NewStyle().Width(9).Foreground(lipgloss.Color("241"))
	urlStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	preferredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// renderReleaseTable formats resolved downloads as a bordered block with one
// row per platform. The preferred platform is marked with an arrow.
func renderReleaseTable(repo string, d releases.Downloads, preferred releases.OS) string {
	version := d.Version
	if version == "" {
		version = "unknown version"
	}

	lines := []string{
		titleStyle.Render(repo) + "  " + versionStyle.Render(version),
		"",
	}
	for _, platform := range releases.Platforms {
		marker := "  "
		if platform == preferred {
			marker = preferredStyle.Render("→ ")
		}
		url := d.URL(platform)
		value := missingStyle.Render("not available")
		if url != "" {
			value = urlStyle.Render(url)
		}
		lines = append(lines, marker+labelStyle.Render(platform.Label())+value)
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}
