package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Colors switch automatically between light and dark terminals.
var (
	PrimaryColor   = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	HeadingColor   = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	ExternalColor  = lipgloss.AdaptiveColor{Light: "#6F42C1", Dark: "#B392F0"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	IndexStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Width(4).
			Align(lipgloss.Right)

	NameStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	ExternalStyle = lipgloss.NewStyle().
			Foreground(ExternalColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// Status is the outcome of one reported step.
type Status string

const (
	StatusDone        Status = "done"
	StatusSkipped     Status = "skipped"
	StatusNothingToDo Status = "nothing to do"
	StatusWouldDo     Status = "would do"
	StatusFailed      Status = "failed"
)

// StatusStyle returns the badge style for a status.
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusDone:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	case StatusWouldDo:
		return pterm.NewStyle(pterm.BgMagenta, pterm.FgBlack)
	case StatusSkipped:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}
