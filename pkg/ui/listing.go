package ui

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/charmbracelet/lipgloss"
)

// RenderListing renders the numbered plugin menu.
func RenderListing(listing catalog.Listing) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Available plugins"))
	b.WriteString("\n")

	width := 0
	for _, e := range listing {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}
	nameStyle := NameStyle.Width(width + 2)

	for _, e := range listing {
		desc := e.Description
		if e.Kind == catalog.External {
			desc = ExternalStyle.Render("[external] ") + desc
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			IndexStyle.Render(fmt.Sprintf("%d)", e.Index)),
			" ",
			nameStyle.Render(e.Name),
			MutedStyle.Render(desc),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderCatalogHelp renders every plugin with its description for --help,
// including entries restricted to other platforms.
func RenderCatalogHelp(entries []catalog.Descriptor) string {
	var b strings.Builder
	b.WriteString("Plugins:\n")
	for _, kind := range []catalog.Kind{catalog.Bundled, catalog.External} {
		fmt.Fprintf(&b, "  %s:\n", kind)
		for _, d := range entries {
			if d.Kind != kind {
				continue
			}
			line := fmt.Sprintf("    %-26s %s", d.Name, d.Description)
			if d.Requires != "" {
				line += fmt.Sprintf(" (%s only)", d.Requires)
			}
			if d.Source != "" {
				line += " " + PathStyle.Render("<"+d.Source+">")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
