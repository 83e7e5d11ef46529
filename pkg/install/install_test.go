package install

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/arthur-debert/zshkit/pkg/config"
	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"github.com/arthur-debert/zshkit/pkg/plugins"
	"github.com/arthur-debert/zshkit/pkg/prompt"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/testutil"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/arthur-debert/zshkit/pkg/zshrc"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateRC = `export ZSH="$HOME/.oh-my-zsh"
ZSH_THEME="robbyrussell"
plugins=(git)
source $ZSH/oh-my-zsh.sh
`

var ana = users.Identity{Name: "ana", UID: 1000, GID: 1000, Home: "/home/ana"}

type fixture struct {
	fs        afero.Fs
	packages  *testutil.Packages
	bootstrap *testutil.Bootstrapper
	shell     *testutil.Shell
	vcs       *testutil.VCS
	prompter  *testutil.Prompter
	out       *bytes.Buffer
	inst      *Installer
}

func newFixture(t *testing.T, files map[string]string, dryRun bool, lookPath system.LookPath) *fixture {
	t.Helper()
	settings := config.MustDefaults()
	c, err := catalog.Load()
	require.NoError(t, err)

	f := &fixture{
		fs:        testutil.NewMemFS(t, files),
		packages:  &testutil.Packages{},
		bootstrap: &testutil.Bootstrapper{},
		shell:     &testutil.Shell{Shells: map[string]string{"ana": "/bin/bash"}},
		vcs:       &testutil.VCS{},
		prompter:  &testutil.Prompter{},
		out:       &bytes.Buffer{},
	}
	f.bootstrap.InstallFunc = func(string) error {
		require.NoError(t, f.fs.MkdirAll(settings.FrameworkDir(ana.Home), 0755))
		return afero.WriteFile(f.fs, settings.ConfigPath(ana.Home), []byte(templateRC), 0644)
	}

	out := ui.NewReporter(f.out)
	store := zshrc.NewStore(f.fs, settings.Backup.Infix)
	f.inst = &Installer{
		Settings:  settings,
		Profile:   platform.NewDebian("ubuntu"),
		Target:    ana,
		FS:        f.fs,
		Catalog:   c,
		Packages:  f.packages,
		Bootstrap: f.bootstrap,
		Shell:     f.shell,
		LookPath:  lookPath,
		Writer: &plugins.Writer{
			Store: store,
			Fetcher: &plugins.Fetcher{
				FS:          f.fs,
				VCS:         f.vcs,
				Packages:    f.packages,
				LookPath:    lookPath,
				RuntimeDeps: settings.Plugins.RuntimeDeps,
				CloneDepth:  settings.Plugins.CloneDepth,
				Out:         out,
			},
			PluginDir: func(name string) string { return settings.PluginDir(ana.Home, name) },
			DryRun:    dryRun,
			Out:       out,
		},
		Prompt: &prompt.Configurator{
			Store:     store,
			Packages:  f.packages,
			LookPath:  lookPath,
			Binary:    settings.Prompt.Binary,
			Package:   settings.Prompt.Package,
			InitLine:  settings.Prompt.InitLine,
			StylePath: settings.StylePath(ana.Home),
			DryRun:    dryRun,
			Out:       out,
		},
		Prompter:   f.prompter,
		Out:        out,
		DryRun:     dryRun,
		PromptMode: PromptAsk,
	}
	return f
}

func pluginInput(s string) *string { return &s }

func TestRun_FreshInstall(t *testing.T) {
	// zsh appears on PATH once the package manager has installed it
	var installed *testutil.Packages
	base := testutil.LookPath("apt-get", "git", "curl")
	lookPath := func(file string) (string, error) {
		for _, pkg := range installed.Updated {
			if pkg == file {
				return "/usr/bin/" + file, nil
			}
		}
		return base(file)
	}
	f := newFixture(t, map[string]string{"/etc/shells": "/bin/bash\n/usr/bin/zsh\n"}, false, lookPath)
	installed = f.packages
	f.prompter.Answers = []string{"", "n"}

	summary, err := f.inst.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"zsh"}, f.packages.Updated, "only the missing prerequisite")
	assert.Len(t, f.bootstrap.URLs, 1)
	assert.Contains(t, f.bootstrap.URLs[0], "ohmyzsh")
	assert.Len(t, f.vcs.Cloned, 4, "all external plugins")
	assert.Contains(t, f.packages.Installed, "fzf")

	rc := testutil.ReadFile(t, f.fs, "/home/ana/.zshrc")
	assert.Contains(t, rc, "plugins=(git sudo z ")
	assert.Contains(t, rc, "zsh-syntax-highlighting)")
	assert.Contains(t, rc, `ZSH_THEME="robbyrussell"`, "prompt declined")

	assert.Equal(t, []string{"ana -> /usr/bin/zsh"}, f.shell.Changes)
	assert.Equal(t, "/usr/bin/zsh", summary.Shell)
	assert.Len(t, summary.Plugins, 19)
	assert.Empty(t, summary.Prompt)
	assert.Len(t, summary.Backups, 1)
	assert.Contains(t, f.out.String(), "Available plugins")
}

func TestRun_FrameworkAlreadyPresent(t *testing.T) {
	f := newFixture(t, map[string]string{
		"/home/ana/.oh-my-zsh/oh-my-zsh.sh": "",
		"/home/ana/.zshrc":                  templateRC,
	}, false, testutil.LookPath("apt-get", "zsh", "git", "curl", "starship"))
	f.inst.PluginInput = pluginInput("none")
	f.inst.PromptMode = PromptYes

	summary, err := f.inst.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.bootstrap.URLs)
	assert.Empty(t, f.packages.Updated)
	assert.Empty(t, f.prompter.Asked, "nothing needed a question")

	rc := testutil.ReadFile(t, f.fs, "/home/ana/.zshrc")
	assert.Contains(t, rc, "plugins=(git)\n")
	assert.Contains(t, rc, "ZSH_THEME=\"\"\n")
	assert.Contains(t, rc, `eval "$(starship init zsh)"`)
	assert.Equal(t, "starship", summary.Prompt)
	assert.Len(t, summary.Backups, 2)
}

func TestRun_SelectionWarnings(t *testing.T) {
	f := newFixture(t, nil, false, testutil.LookPath("apt-get", "zsh", "git", "curl"))
	f.inst.PluginInput = pluginInput("3 99 abc")
	f.inst.PromptMode = PromptNo

	summary, err := f.inst.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"git", "z"}, summary.Plugins)
	assert.Contains(t, f.out.String(), `ignoring "99"`)
	assert.Contains(t, f.out.String(), `ignoring "abc"`)
}

func TestRun_MissingManagerIsFatal(t *testing.T) {
	f := newFixture(t, nil, false, testutil.LookPath("zsh"))

	_, err := f.inst.Run(context.Background())
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingPrerequisite))
	assert.Empty(t, f.bootstrap.URLs)
}

func TestRun_PrerequisiteFailureIsFatal(t *testing.T) {
	f := newFixture(t, nil, false, testutil.LookPath("apt-get"))
	f.packages.Fail = map[string]bool{"curl": true}

	_, err := f.inst.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingPrerequisite))
}

func TestRun_BootstrapWithoutConfigIsFatal(t *testing.T) {
	f := newFixture(t, nil, false, testutil.LookPath("apt-get", "zsh", "git", "curl"))
	f.bootstrap.InstallFunc = nil
	f.inst.PluginInput = pluginInput("none")

	_, err := f.inst.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrZshrcMissing))
}

func TestRun_ShellChangeFailureIsAdvisory(t *testing.T) {
	f := newFixture(t, nil, false, testutil.LookPath("apt-get", "zsh", "git", "curl"))
	f.inst.PluginInput = pluginInput("none")
	f.inst.PromptMode = PromptNo
	f.shell.ChangeErr = errors.New(errors.ErrCommandFailed, "chsh failed")

	summary, err := f.inst.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/bin/bash", summary.Shell)
	assert.Contains(t, f.out.String(), "Could not change the login shell")
}

func TestRun_ShellAlreadyZsh(t *testing.T) {
	f := newFixture(t, nil, false, testutil.LookPath("apt-get", "zsh", "git", "curl"))
	f.inst.PluginInput = pluginInput("none")
	f.inst.PromptMode = PromptNo
	f.shell.Shells["ana"] = "/usr/bin/zsh"

	_, err := f.inst.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.shell.Changes)
}

func TestRun_DryRunNeverPromptsNorWrites(t *testing.T) {
	f := newFixture(t, map[string]string{"/home/ana/.profile": ""}, true, testutil.LookPath())
	f.bootstrap.InstallFunc = nil
	before := testutil.Snapshot(t, f.fs)

	summary, err := f.inst.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.prompter.Asked)
	assert.Equal(t, before, testutil.Snapshot(t, f.fs))
	assert.True(t, summary.DryRun)
	assert.Len(t, summary.Plugins, 19)
	assert.Contains(t, summary.Markdown(), "Dry run complete")
}

func TestParsePromptMode(t *testing.T) {
	for in, want := range map[string]PromptMode{"": PromptAsk, "ask": PromptAsk, "YES": PromptYes, "no": PromptNo} {
		got, err := ParsePromptMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePromptMode("maybe")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSummaryMarkdown(t *testing.T) {
	s := &Summary{
		Target:     "ana",
		Platform:   "debian/ubuntu (apt-get)",
		ConfigPath: "/home/ana/.zshrc",
		Plugins:    []string{"git", "z"},
		Backups:    []string{"/home/ana/.zshrc.backup-20250101000000000000"},
		Prompt:     "starship",
		Shell:      "/usr/bin/zsh",
	}
	md := s.Markdown()

	assert.True(t, strings.HasPrefix(md, "# zsh is ready"))
	assert.Contains(t, md, "git, z")
	assert.Contains(t, md, "starship")
	assert.Contains(t, md, "exec zsh")
}
