package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/errors"
)

// Prompter asks a person questions. An empty answer selects the default.
type Prompter interface {
	Ask(question, def string) (string, error)
	Confirm(question string, def bool) (bool, error)
}

// ConsolePrompter reads answers line by line. End of input counts as an
// empty answer.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Prompter = (*ConsolePrompter)(nil)

// NewConsolePrompter prompts on out and reads from in (stdin/stdout when nil).
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

func (p *ConsolePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to read user input")
	}
	return strings.TrimSpace(line), nil
}

// Ask prints question and returns the answer, or def for an empty line.
func (p *ConsolePrompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. Anything but y/yes is no.
func (p *ConsolePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", question, hint)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// AutoPrompter answers every question with its default. It backs
// non-interactive runs.
type AutoPrompter struct{}

var _ Prompter = AutoPrompter{}

func (AutoPrompter) Ask(_, def string) (string, error)        { return def, nil }
func (AutoPrompter) Confirm(_ string, def bool) (bool, error) { return def, nil }

// AssumeYes accepts every confirmation and every default. It backs --yes.
type AssumeYes struct{}

var _ Prompter = AssumeYes{}

func (AssumeYes) Ask(_, def string) (string, error)      { return def, nil }
func (AssumeYes) Confirm(_ string, _ bool) (bool, error) { return true, nil }
