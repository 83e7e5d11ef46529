package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal. Plain format, or any glamour
// failure, returns md unchanged.
func RenderMarkdown(md string, format Format, width int) string {
	if format == FormatPlain {
		return md
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
