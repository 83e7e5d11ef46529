// Package zshrc edits the target account's shell configuration file.
//
// The file is treated as opaque lines. Only two kinds of line are
// recognized: the framework's plugin list and its theme selector. Every
// mutation on disk is preceded by a timestamped backup next to the file.
package zshrc

import (
	"regexp"
	"strings"
)

var (
	pluginLinePattern = regexp.MustCompile(`^\s*plugins=\(.*\)\s*$`)
	themeLinePattern  = regexp.MustCompile(`^\s*ZSH_THEME=`)
)

// BlankTheme is the theme selector that disables the framework's theme.
const BlankTheme = `ZSH_THEME=""`

// PluginLine renders the plugin-list line for names, in order.
func PluginLine(names []string) string {
	return "plugins=(" + strings.Join(names, " ") + ")"
}

// Document is a configuration file split into lines.
type Document struct {
	lines           []string
	trailingNewline bool
}

// Parse splits content into a Document.
func Parse(content string) *Document {
	d := &Document{}
	if content == "" {
		return d
	}
	d.trailingNewline = strings.HasSuffix(content, "\n")
	d.lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return d
}

// String reassembles the file.
func (d *Document) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	out := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return out
}

// Lines returns a copy of the lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// PluginLineValue returns the first plugin-list line, if any.
func (d *Document) PluginLineValue() (string, bool) {
	for _, l := range d.lines {
		if pluginLinePattern.MatchString(l) {
			return strings.TrimSpace(l), true
		}
	}
	return "", false
}

// SetPluginLine replaces the first plugin-list line with line, or appends
// line when there is none. Later plugin-list lines are left untouched. It
// reports whether an existing line was replaced.
func (d *Document) SetPluginLine(line string) bool {
	for i, l := range d.lines {
		if pluginLinePattern.MatchString(l) {
			d.lines[i] = line
			return true
		}
	}
	d.append(line)
	return false
}

// BlankTheme sets every theme selector to the empty theme. It reports
// whether anything changed; a file without a selector is left alone.
func (d *Document) BlankTheme() bool {
	changed := false
	for i, l := range d.lines {
		if themeLinePattern.MatchString(l) && strings.TrimSpace(l) != BlankTheme {
			d.lines[i] = BlankTheme
			changed = true
		}
	}
	return changed
}

// HasLine reports whether an identical line (ignoring surrounding space) exists.
func (d *Document) HasLine(line string) bool {
	want := strings.TrimSpace(line)
	for _, l := range d.lines {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}

// EnsureLine appends line unless it is already present. It reports whether
// the line was added.
func (d *Document) EnsureLine(line string) bool {
	if d.HasLine(line) {
		return false
	}
	d.append(line)
	return true
}

func (d *Document) append(line string) {
	d.lines = append(d.lines, line)
	d.trailingNewline = true
}
