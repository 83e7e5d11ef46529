package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"github.com/arthur-debert/zshkit/pkg/testutil"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rootUser = users.Identity{Name: "root", UID: 0, GID: 0, Home: "/root"}
	ana      = users.Identity{Name: "ana", UID: 1000, GID: 1000, Home: "/home/ana"}
	bob      = users.Identity{Name: "bob", UID: 1001, GID: 1001, Home: "/home/bob"}
)

// fakeHost is a machine with three accounts, a Debian profile and nothing
// installed but what the test puts on PATH.
type fakeHost struct {
	invoker     users.Identity
	interactive bool
	detectErr   error
	fs          afero.Fs
	runner      *testutil.Runner
	runnerOpts  executor.Options
	looked      []string
	onPath      []string
}

func newFakeHost(t *testing.T, invoker users.Identity, files map[string]string) *fakeHost {
	t.Helper()
	return &fakeHost{
		invoker: invoker,
		fs:      testutil.NewMemFS(t, files),
		runner:  &testutil.Runner{},
	}
}

func (f *fakeHost) host() host {
	return host{
		detect: func(context.Context) (*platform.Profile, error) {
			if f.detectErr != nil {
				return nil, f.detectErr
			}
			return platform.NewDebian("debian"), nil
		},
		currentUser: func() (users.Identity, error) { return f.invoker, nil },
		lookupUser: func(name string) (users.Identity, error) {
			f.looked = append(f.looked, name)
			for _, u := range []users.Identity{rootUser, ana, bob} {
				if u.Name == name {
					return u, nil
				}
			}
			return users.Identity{}, errors.Newf(errors.ErrUserLookup, "no such user %s", name)
		},
		interactive: func() bool { return f.interactive },
		fs:          f.fs,
		lookPath:    testutil.LookPath(f.onPath...),
		newRunner: func(opts executor.Options) executor.Runner {
			f.runnerOpts = opts
			f.runner.Dry = opts.DryRun
			return f.runner
		},
	}
}

// settingsFile isolates config loading from the developer's own files.
func settingsFile(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	return path
}

func TestNewEnv_PrompterSelection(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		interactive bool
		want        ui.Prompter
	}{
		{name: "yes_flag", opts: Options{User: "ana", Yes: true}, interactive: true, want: ui.AssumeYes{}},
		{name: "dry_run", opts: Options{User: "ana", DryRun: true}, interactive: true, want: ui.AutoPrompter{}},
		{name: "not_a_terminal", opts: Options{User: "ana"}, interactive: false, want: ui.AutoPrompter{}},
		{name: "terminal", opts: Options{User: "ana"}, interactive: true, want: &ui.ConsolePrompter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeHost(t, rootUser, nil)
			f.interactive = tt.interactive
			opts := tt.opts
			opts.ConfigPath = settingsFile(t)

			e, err := newEnv(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &opts, f.host())
			require.NoError(t, err)

			assert.IsType(t, tt.want, e.prompter)
			assert.Equal(t, tt.opts.DryRun, f.runnerOpts.DryRun)
		})
	}
}

func TestNewEnv_AsksForTarget(t *testing.T) {
	f := newFakeHost(t, rootUser, nil)
	f.interactive = true
	var out bytes.Buffer

	e, err := newEnv(context.Background(), strings.NewReader("bob\n"), &out,
		&Options{ConfigPath: settingsFile(t)}, f.host())
	require.NoError(t, err)

	assert.Equal(t, bob, e.target)
	assert.Contains(t, out.String(), MsgAskTarget)
	assert.Equal(t, []string{"bob"}, f.looked)
}

func TestNewEnv_EmptyAnswerTakesSudoUser(t *testing.T) {
	t.Setenv("SUDO_USER", "ana")
	f := newFakeHost(t, rootUser, nil)
	f.interactive = true

	e, err := newEnv(context.Background(), strings.NewReader("\n"), &bytes.Buffer{},
		&Options{ConfigPath: settingsFile(t)}, f.host())
	require.NoError(t, err)

	assert.Equal(t, ana, e.target)
}

func TestNewEnv_RootProvisioningAnotherAccount(t *testing.T) {
	f := newFakeHost(t, rootUser, nil)

	e, err := newEnv(context.Background(), nil, &bytes.Buffer{},
		&Options{User: "ana", ConfigPath: settingsFile(t)}, f.host())
	require.NoError(t, err)

	require.NotNil(t, e.store.Owner, "files created for ana are chowned to ana")
	assert.Equal(t, ana, *e.store.Owner)
	assert.Equal(t, rootUser, f.runnerOpts.Invoker)
	assert.Equal(t, rootUser, e.shell.Invoker)
	assert.Equal(t, rootUser, e.shell.Admin)
	assert.Equal(t, platform.Debian, e.shell.Platform)
}

func TestNewEnv_SelfProvisioning(t *testing.T) {
	f := newFakeHost(t, ana, nil)

	e, err := newEnv(context.Background(), nil, &bytes.Buffer{},
		&Options{User: "ana", ConfigPath: settingsFile(t)}, f.host())
	require.NoError(t, err)

	assert.Nil(t, e.store.Owner)
	assert.Equal(t, ana, e.shell.Invoker, "the login shell is read without sudo")
	assert.Equal(t, rootUser, e.admin)
	assert.Equal(t, []string{"root", "ana"}, f.looked)
}

func TestNewEnv_NonRootCannotTargetOthers(t *testing.T) {
	f := newFakeHost(t, ana, nil)

	_, err := newEnv(context.Background(), nil, &bytes.Buffer{},
		&Options{User: "bob", ConfigPath: settingsFile(t)}, f.host())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
}

func TestNewEnv_UnknownTarget(t *testing.T) {
	f := newFakeHost(t, rootUser, nil)

	_, err := newEnv(context.Background(), nil, &bytes.Buffer{},
		&Options{User: "carol", ConfigPath: settingsFile(t)}, f.host())
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserLookup))
}

func TestRun_UnsupportedPlatform(t *testing.T) {
	f := newFakeHost(t, rootUser, nil)
	f.detectErr = errors.New(errors.ErrUnsupportedPlatform, "unsupported distribution: arch")

	err := run(context.Background(), nil, &bytes.Buffer{},
		&Options{User: "ana", ConfigPath: settingsFile(t)}, f.host())
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPlatform))
}

func TestRun_DryRunUninstall(t *testing.T) {
	const rc = "/home/ana/.zshrc"
	files := map[string]string{
		rc:                                  "plugins=(git z)\n",
		rc + ".backup-20250101000000000000": "original\n",
		"/home/ana/.oh-my-zsh/oh-my-zsh.sh": "",
		"/etc/shells":                       "/bin/bash\n/usr/bin/zsh\n",
	}
	f := newFakeHost(t, rootUser, files)
	f.onPath = []string{"starship", "zsh"}
	f.runner.OutputFunc = func(executor.Command, users.Identity) (string, error) {
		return "ana:x:1000:1000::/home/ana:/usr/bin/zsh", nil
	}
	before := testutil.Snapshot(t, f.fs)
	var out bytes.Buffer

	err := run(context.Background(), nil, &out,
		&Options{User: "ana", DryRun: true, Uninstall: true, ConfigPath: settingsFile(t)}, f.host())
	require.NoError(t, err)

	assert.Equal(t, before, testutil.Snapshot(t, f.fs))
	assert.Empty(t, f.runner.Calls)
	assert.Equal(t, "root", f.runner.Outputs[0].As)
	assert.Contains(t, out.String(), MsgDryRunNotice)
	assert.Contains(t, out.String(), "would offer to restore")
	assert.Contains(t, out.String(), MsgUninstallDone)
}

func TestRun_UninstallFailureIsReported(t *testing.T) {
	f := newFakeHost(t, rootUser, nil)
	f.runner.OutputFunc = func(executor.Command, users.Identity) (string, error) {
		return "", errors.New(errors.ErrCommandFailed, "getent: exit status 2")
	}
	var out bytes.Buffer

	err := run(context.Background(), nil, &out,
		&Options{User: "ana", DryRun: true, Uninstall: true, ConfigPath: settingsFile(t)}, f.host())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "cannot read login shell")
	assert.Contains(t, out.String(), MsgUninstallWarn)
}
