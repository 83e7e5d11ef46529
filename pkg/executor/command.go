package executor

import (
	"regexp"
	"strings"
)

// Command is one external program invocation.
type Command struct {
	Argv []string
	// Env holds extra KEY=VALUE pairs on top of the inherited environment.
	Env []string
	Dir string
}

// NewCommand builds a Command from an argv.
func NewCommand(argv ...string) Command {
	return Command{Argv: argv}
}

// WithEnv returns a copy of c with extra environment pairs.
func (c Command) WithEnv(pairs ...string) Command {
	c.Env = append(append([]string{}, c.Env...), pairs...)
	return c
}

// Name is the program being run.
func (c Command) Name() string {
	if len(c.Argv) == 0 {
		return ""
	}
	return c.Argv[0]
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Argv))
	for _, kv := range c.Env {
		parts = append(parts, quote(kv))
	}
	for _, a := range c.Argv {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

var safeWord = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if safeWord.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
