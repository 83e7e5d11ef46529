package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/rs/zerolog"
)

// Runner is what the rest of zshkit depends on to run commands.
type Runner interface {
	// Run executes cmd as the given account. In dry-run mode it only reports.
	Run(ctx context.Context, cmd Command, as users.Identity) error
	// Output executes a read-only cmd and returns its trimmed stdout.
	Output(ctx context.Context, cmd Command, as users.Identity) (string, error)
	// DryRun reports whether side effects are suppressed.
	DryRun() bool
}

// Notifier receives the rendering of commands skipped by dry-run.
type Notifier interface {
	WouldRun(account, command string)
}

// Options configures an Executor.
type Options struct {
	// Invoker is the account zshkit runs as.
	Invoker  users.Identity
	DryRun   bool
	Notifier Notifier
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   zerolog.Logger
	// Exec builds the process; tests replace it.
	Exec func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Executor is the exec-backed Runner.
type Executor struct {
	invoker  users.Identity
	dryRun   bool
	notifier Notifier
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   zerolog.Logger
	exec     func(ctx context.Context, name string, args ...string) *exec.Cmd
}

var _ Runner = (*Executor)(nil)

// New creates an executor.
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}
	e := &Executor{
		invoker:  opts.Invoker,
		dryRun:   opts.DryRun,
		notifier: opts.Notifier,
		stdin:    opts.Stdin,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		logger:   logger,
		exec:     opts.Exec,
	}
	if e.stdin == nil {
		e.stdin = os.Stdin
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	if e.exec == nil {
		e.exec = exec.CommandContext
	}
	return e
}

// DryRun reports whether side effects are suppressed.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Run executes cmd as the given account, streaming its output.
func (e *Executor) Run(ctx context.Context, cmd Command, as users.Identity) error {
	if len(cmd.Argv) == 0 {
		return errors.New(errors.ErrInvalidInput, "empty command")
	}
	logging.LogCommand(cmd.Name(), cmd.Argv[1:], as.Name)

	if e.dryRun {
		e.logger.Info().Str("command", cmd.String()).Str("as", as.Name).Msg("Dry run mode - command would be executed")
		if e.notifier != nil {
			e.notifier.WouldRun(as.Name, cmd.String())
		}
		return nil
	}

	c := e.build(ctx, cmd, as)
	c.Stdin = e.stdin
	c.Stdout = e.stdout
	var stderr bytes.Buffer
	c.Stderr = io.MultiWriter(e.stderr, &stderr)

	if err := c.Run(); err != nil {
		e.logger.Error().Err(err).Str("command", cmd.String()).Str("stderr", stderr.String()).Msg("Command failed")
		return commandError(err, cmd, as)
	}
	e.logger.Debug().Str("command", cmd.String()).Msg("Command succeeded")
	return nil
}

// Output executes cmd and returns its stdout with surrounding space removed.
// It runs in dry-run mode too, so only use it for commands that change nothing.
func (e *Executor) Output(ctx context.Context, cmd Command, as users.Identity) (string, error) {
	if len(cmd.Argv) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "empty command")
	}
	c := e.build(ctx, cmd, as)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		e.logger.Debug().Err(err).Str("command", cmd.String()).Str("stderr", stderr.String()).Msg("Query command failed")
		return "", commandError(err, cmd, as)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// build wraps cmd in sudo when it must run as someone other than the invoker.
func (e *Executor) build(ctx context.Context, cmd Command, as users.Identity) *exec.Cmd {
	argv := Impersonate(cmd, e.invoker, as)
	c := e.exec(ctx, argv[0], argv[1:]...)
	c.Dir = cmd.Dir
	if !needsImpersonation(e.invoker, as) {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

// Impersonate returns the argv that runs cmd as the given account when
// invoked by invoker. Extra environment is passed through env(1) because sudo
// resets the environment.
func Impersonate(cmd Command, invoker, as users.Identity) []string {
	if !needsImpersonation(invoker, as) {
		return cmd.Argv
	}
	argv := []string{"sudo", "-u", as.Name, "-H"}
	if len(cmd.Env) > 0 {
		argv = append(argv, "env")
		argv = append(argv, cmd.Env...)
	}
	return append(argv, cmd.Argv...)
}

func needsImpersonation(invoker, as users.Identity) bool {
	return as.Name != "" && as.Name != invoker.Name
}

func commandError(err error, cmd Command, as users.Identity) error {
	zerr := errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", cmd.Name()).
		WithDetail("command", cmd.String()).
		WithDetail("user", as.Name)
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		zerr = zerr.WithDetail("exit_code", exitErr.ExitCode())
	}
	return zerr
}
