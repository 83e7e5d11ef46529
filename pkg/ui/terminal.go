package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Format is how output is decorated.
type Format int

const (
	// FormatRich uses colors and styling.
	FormatRich Format = iota
	// FormatPlain emits undecorated text.
	FormatPlain
)

func (f Format) String() string {
	if f == FormatPlain {
		return "plain"
	}
	return "rich"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectFormat picks plain output for pipes, NO_COLOR and dumb terminals.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatPlain
	}
	if !IsTerminal(output) {
		return FormatPlain
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatPlain
	}
	return FormatRich
}

// ConfigureTerminal applies f to the global pterm and lipgloss state.
func ConfigureTerminal(f Format) {
	if f == FormatPlain {
		pterm.DisableStyling()
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	pterm.EnableStyling()
}

// IsInteractive reports whether prompts can be answered by a person.
func IsInteractive() bool {
	return IsTerminal(os.Stdin)
}
