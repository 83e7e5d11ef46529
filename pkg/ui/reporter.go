package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// Messenger is the progress channel orchestration code writes to.
type Messenger interface {
	Step(format string, args ...interface{})
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// WouldRun announces a command suppressed by dry-run.
	WouldRun(account, command string)
	// Print writes preformatted text without a prefix.
	Print(text string)
}

// Reporter prints prefixed pterm messages to one writer.
type Reporter struct {
	out      io.Writer
	step     *pterm.PrefixPrinter
	info     *pterm.PrefixPrinter
	success  *pterm.PrefixPrinter
	warn     *pterm.PrefixPrinter
	err      *pterm.PrefixPrinter
	wouldRun *pterm.PrefixPrinter
}

var _ Messenger = (*Reporter)(nil)

var stepPrinter = pterm.PrefixPrinter{
	MessageStyle: pterm.NewStyle(pterm.Bold),
	Prefix: pterm.Prefix{
		Style: pterm.NewStyle(pterm.FgBlack, pterm.BgCyan),
		Text:  "  STEP ",
	},
}

var wouldRunPrinter = pterm.PrefixPrinter{
	MessageStyle: pterm.NewStyle(pterm.FgMagenta),
	Prefix: pterm.Prefix{
		Style: pterm.NewStyle(pterm.FgBlack, pterm.BgMagenta),
		Text:  "DRY RUN",
	},
}

// NewReporter creates a reporter writing to out (stdout when nil).
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:      out,
		step:     stepPrinter.WithWriter(out),
		info:     pterm.Info.WithWriter(out),
		success:  pterm.Success.WithWriter(out),
		warn:     pterm.Warning.WithWriter(out),
		err:      pterm.Error.WithWriter(out),
		wouldRun: wouldRunPrinter.WithWriter(out),
	}
}

func (r *Reporter) Step(format string, args ...interface{}) {
	r.step.Println(fmt.Sprintf(format, args...))
}

func (r *Reporter) Info(format string, args ...interface{}) {
	r.info.Println(fmt.Sprintf(format, args...))
}

func (r *Reporter) Success(format string, args ...interface{}) {
	r.success.Println(fmt.Sprintf(format, args...))
}

func (r *Reporter) Warn(format string, args ...interface{}) {
	r.warn.Println(fmt.Sprintf(format, args...))
}

func (r *Reporter) Error(format string, args ...interface{}) {
	r.err.Println(fmt.Sprintf(format, args...))
}

// WouldRun implements executor.Notifier.
func (r *Reporter) WouldRun(account, command string) {
	r.wouldRun.Println(fmt.Sprintf("[%s] %s", account, command))
}

func (r *Reporter) Print(text string) {
	fmt.Fprintln(r.out, text)
}

// StatusLine renders "badge subject: detail" for a step outcome.
func StatusLine(status Status, subject, detail string) string {
	badge := StatusStyle(status).Sprint(fmt.Sprintf(" %-13s ", status))
	if detail == "" {
		return fmt.Sprintf("%s %s", badge, subject)
	}
	return fmt.Sprintf("%s %s: %s", badge, subject, MutedStyle.Render(detail))
}
