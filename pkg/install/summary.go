package install

import (
	"fmt"
	"strings"
)

// Summary is what a run did, shown at the end.
type Summary struct {
	Target     string
	Platform   string
	ConfigPath string
	Plugins    []string
	PluginLine string
	Backups    []string
	// Prompt is the prompt tool enabled by this run, if any.
	Prompt string
	// Shell is the login shell after the run; empty if it could not be read.
	Shell  string
	DryRun bool
}

// Markdown renders the summary for glamour.
func (s *Summary) Markdown() string {
	var b strings.Builder
	if s.DryRun {
		b.WriteString("# Dry run complete\n\nNothing was changed.\n\n")
	} else {
		b.WriteString("# zsh is ready\n\n")
	}
	fmt.Fprintf(&b, "- **Account:** %s\n", s.Target)
	fmt.Fprintf(&b, "- **Platform:** %s\n", s.Platform)
	fmt.Fprintf(&b, "- **Plugins:** %s\n", strings.Join(s.Plugins, ", "))
	fmt.Fprintf(&b, "- **Configuration:** `%s`\n", s.ConfigPath)
	for _, backup := range s.Backups {
		fmt.Fprintf(&b, "- **Backup:** `%s`\n", backup)
	}
	if s.Prompt != "" {
		fmt.Fprintf(&b, "- **Prompt:** %s\n", s.Prompt)
	}
	if s.Shell != "" {
		fmt.Fprintf(&b, "- **Login shell:** `%s`\n", s.Shell)
	}
	if !s.DryRun {
		b.WriteString("\nLog out and back in, or run `exec zsh`, to start using it.\n")
	}
	return b.String()
}
