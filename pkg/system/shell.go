package system

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/spf13/afero"
)

// ShellChanger reads and changes an account's login shell.
type ShellChanger interface {
	Current(ctx context.Context, account users.Identity) (string, error)
	Change(ctx context.Context, account users.Identity, shell string) error
}

// LoginShell uses getent/dscl to read and chsh to change the login shell.
type LoginShell struct {
	Runner   executor.Runner
	Platform platform.ID
	// Invoker reads the account database; getent and dscl need no privilege.
	Invoker users.Identity
	// Admin runs chsh so that no password prompt is needed.
	Admin users.Identity
}

var _ ShellChanger = (*LoginShell)(nil)

// Current returns the login shell recorded in the account database.
func (l *LoginShell) Current(ctx context.Context, account users.Identity) (string, error) {
	if l.Platform == platform.MacOS {
		out, err := l.Runner.Output(ctx,
			executor.NewCommand("dscl", ".", "-read", "/Users/"+account.Name, "UserShell"), l.Invoker)
		if err != nil {
			return "", err
		}
		return parseDscl(out)
	}
	out, err := l.Runner.Output(ctx, executor.NewCommand("getent", "passwd", account.Name), l.Invoker)
	if err != nil {
		return "", err
	}
	return parsePasswd(out)
}

// Change sets the login shell.
func (l *LoginShell) Change(ctx context.Context, account users.Identity, shell string) error {
	return l.Runner.Run(ctx, executor.NewCommand("chsh", "-s", shell, account.Name), l.Admin)
}

// parsePasswd extracts the shell, the seventh field, from a passwd entry.
func parsePasswd(line string) (string, error) {
	fields := strings.Split(strings.TrimSpace(line), ":")
	if len(fields) < 7 || fields[6] == "" {
		return "", errors.Newf(errors.ErrUserLookup, "malformed passwd entry %q", line)
	}
	return fields[6], nil
}

// parseDscl reads "UserShell: /bin/zsh".
func parseDscl(out string) (string, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(out), ":")
	value = strings.TrimSpace(value)
	if !ok || strings.TrimSpace(key) != "UserShell" || value == "" {
		return "", errors.Newf(errors.ErrUserLookup, "unexpected dscl output %q", out)
	}
	return value, nil
}

// ShellRegistered reports whether shell is listed in the allow-list file
// (normally /etc/shells). A missing file counts as not registered.
func ShellRegistered(fs afero.Fs, allowList, shell string) (bool, error) {
	entries, err := allowListEntries(fs, allowList)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e == shell {
			return true, nil
		}
	}
	return false, nil
}

// RegisteredShells returns the allow-list entries whose base name is binary,
// such as /bin/zsh and /usr/bin/zsh for "zsh". The binaries need not exist.
func RegisteredShells(fs afero.Fs, allowList, binary string) ([]string, error) {
	entries, err := allowListEntries(fs, allowList)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if filepath.Base(e) == binary {
			out = append(out, e)
		}
	}
	return out, nil
}

func allowListEntries(fs afero.Fs, allowList string) ([]string, error) {
	data, err := afero.ReadFile(fs, allowList)
	if err != nil {
		if exists, _ := afero.Exists(fs, allowList); !exists {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", allowList)
	}
	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// LookPath finds a binary on PATH, like exec.LookPath.
type LookPath func(file string) (string, error)

// Has reports whether file resolves on PATH.
func (lp LookPath) Has(file string) bool {
	_, err := lp(file)
	return err == nil
}
