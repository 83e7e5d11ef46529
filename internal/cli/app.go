package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/arthur-debert/zshkit/pkg/config"
	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/install"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"github.com/arthur-debert/zshkit/pkg/plugins"
	"github.com/arthur-debert/zshkit/pkg/prompt"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/uninstall"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/arthur-debert/zshkit/pkg/zshrc"
	"github.com/spf13/afero"
)

// env is everything resolved once at startup and shared by both flows.
type env struct {
	opts     *Options
	settings *config.Settings
	profile  *platform.Profile
	invoker  users.Identity
	admin    users.Identity
	target   users.Identity
	format   ui.Format
	out      *ui.Reporter
	prompter ui.Prompter
	runner   executor.Runner
	fs       afero.Fs
	store    *zshrc.Store
	lookPath system.LookPath
	packages *system.Packages
	shell    *system.LoginShell
}

// host is how a run reaches the machine: platform, account database,
// terminal, filesystem and processes. Tests substitute every piece.
type host struct {
	detect      func(ctx context.Context) (*platform.Profile, error)
	currentUser func() (users.Identity, error)
	lookupUser  func(name string) (users.Identity, error)
	interactive func() bool
	fs          afero.Fs
	lookPath    system.LookPath
	newRunner   func(opts executor.Options) executor.Runner
}

func systemHost() host {
	return host{
		detect:      platform.NewDetector().Detect,
		currentUser: users.Current,
		lookupUser:  users.LookupSystem,
		interactive: ui.IsInteractive,
		fs:          afero.NewOsFs(),
		lookPath:    exec.LookPath,
		newRunner:   func(opts executor.Options) executor.Runner { return executor.New(opts) },
	}
}

// Run executes an install or uninstall as described by opts.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts *Options) error {
	return run(ctx, in, out, opts, systemHost())
}

func run(ctx context.Context, in io.Reader, out io.Writer, opts *Options, h host) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.GetLogger("cli")

	e, err := newEnv(ctx, in, out, opts, h)
	if err != nil {
		return err
	}
	logger.Info().
		Str("target", e.target.Name).
		Str("invoker", e.invoker.Name).
		Str("platform", e.profile.String()).
		Bool("dry_run", opts.DryRun).
		Bool("uninstall", opts.Uninstall).
		Msg("starting")

	if opts.Uninstall {
		return e.uninstall(ctx)
	}
	return e.install(ctx)
}

func newEnv(ctx context.Context, in io.Reader, out io.Writer, opts *Options, h host) (*env, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	e := &env{opts: opts, settings: settings, fs: h.fs}
	e.format = ui.DetectFormat(os.Stdout)
	ui.ConfigureTerminal(e.format)
	e.out = ui.NewReporter(out)

	switch {
	case opts.Yes:
		e.prompter = ui.AssumeYes{}
	case opts.DryRun || !h.interactive():
		e.prompter = ui.AutoPrompter{}
	default:
		e.prompter = ui.NewConsolePrompter(in, out)
	}

	if opts.DryRun {
		e.out.Warn(MsgDryRunNotice)
	}

	if e.profile, err = h.detect(ctx); err != nil {
		return nil, err
	}
	e.out.Info(MsgProfileFormat, e.profile)

	if err := e.resolveAccounts(h); err != nil {
		return nil, err
	}
	e.out.Info(MsgTargetFormat, e.target.Name, e.target.Home)

	e.runner = h.newRunner(executor.Options{Invoker: e.invoker, DryRun: opts.DryRun, Notifier: e.out})
	e.lookPath = h.lookPath
	e.store = zshrc.NewStore(e.fs, settings.Backup.Infix)
	if e.invoker.Name != e.target.Name {
		owner := e.target
		e.store.Owner = &owner
	}
	e.packages = &system.Packages{Runner: e.runner, Profile: e.profile, Admin: e.admin, Target: e.target}
	e.shell = &system.LoginShell{Runner: e.runner, Platform: e.profile.ID, Invoker: e.invoker, Admin: e.admin}
	return e, nil
}

func (e *env) resolveAccounts(h host) error {
	invoker, err := h.currentUser()
	if err != nil {
		return err
	}
	e.invoker = invoker

	e.admin = invoker
	if !invoker.IsRoot() {
		if e.admin, err = h.lookupUser("root"); err != nil {
			e.admin = users.Identity{Name: "root", Home: "/root"}
		}
	}

	name := e.opts.User
	if name == "" {
		if name, err = e.prompter.Ask(MsgAskTarget, users.DefaultTarget(invoker)); err != nil {
			return err
		}
	}
	if e.target, err = h.lookupUser(name); err != nil {
		return err
	}
	return users.CheckAccess(invoker, e.target)
}

func (e *env) install(ctx context.Context) error {
	s := e.settings
	home := e.target.Home

	c, err := catalog.Load()
	if err != nil {
		return err
	}

	inst := &install.Installer{
		Settings:  s,
		Profile:   e.profile,
		Target:    e.target,
		FS:        e.fs,
		Catalog:   c,
		Packages:  e.packages,
		Bootstrap: &system.ScriptBootstrapper{Runner: e.runner, Target: e.target},
		Shell:     e.shell,
		LookPath:  e.lookPath,
		Writer: &plugins.Writer{
			Store: e.store,
			Fetcher: &plugins.Fetcher{
				FS:          e.fs,
				VCS:         &system.Git{Runner: e.runner, Owner: e.target},
				Packages:    e.packages,
				LookPath:    e.lookPath,
				RuntimeDeps: s.Plugins.RuntimeDeps,
				CloneDepth:  s.Plugins.CloneDepth,
				Out:         e.out,
			},
			PluginDir: func(name string) string { return s.PluginDir(home, name) },
			DryRun:    e.opts.DryRun,
			Out:       e.out,
		},
		Prompt: &prompt.Configurator{
			Store:     e.store,
			Packages:  e.packages,
			LookPath:  e.lookPath,
			Binary:    s.Prompt.Binary,
			Package:   s.Prompt.Package,
			InitLine:  s.Prompt.InitLine,
			StylePath: s.StylePath(home),
			DryRun:    e.opts.DryRun,
			Out:       e.out,
		},
		Prompter:   e.prompter,
		Out:        e.out,
		DryRun:     e.opts.DryRun,
		PromptMode: e.opts.PromptTool,
	}
	if e.opts.PluginsSet {
		inst.PluginInput = &e.opts.Plugins
	}

	summary, err := inst.Run(ctx)
	if err != nil {
		return err
	}
	e.out.Print(ui.RenderMarkdown(summary.Markdown(), e.format, 80))
	return nil
}

func (e *env) uninstall(ctx context.Context) error {
	s := e.settings
	home := e.target.Home

	coord := &uninstall.Coordinator{
		Target:       e.target,
		FS:           e.fs,
		Store:        e.store,
		Shell:        e.shell,
		Packages:     e.packages,
		LookPath:     e.lookPath,
		Prompter:     e.prompter,
		Out:          e.out,
		DryRun:       e.opts.DryRun,
		Baseline:     s.Shell.Baseline,
		FrameworkDir: s.FrameworkDir(home),
		ConfigPath:   s.ConfigPath(home),
		AllowList:    s.Shell.AllowList,
		ShellBinary:  s.Shell.Binary,
		Removable:    removablePackages(s),
	}

	report, err := coord.Run(ctx)
	if err != nil {
		return err
	}
	if report.Failed() {
		e.out.Error(MsgUninstallWarn)
	} else {
		e.out.Success(MsgUninstallDone)
	}
	return nil
}

// removablePackages lists what uninstall offers to remove: the prompt tool,
// plugin runtime dependencies, then the shell itself.
func removablePackages(s *config.Settings) []uninstall.Package {
	pkgs := []uninstall.Package{{Name: s.Prompt.Package, Binary: s.Prompt.Binary}}

	names := make([]string, 0, len(s.Plugins.RuntimeDeps))
	for _, dep := range s.Plugins.RuntimeDeps {
		names = append(names, dep)
	}
	sort.Strings(names)
	seen := map[string]bool{}
	for _, dep := range names {
		if !seen[dep] {
			seen[dep] = true
			pkgs = append(pkgs, uninstall.Package{Name: dep, Binary: dep})
		}
	}

	return append(pkgs, uninstall.Package{Name: s.Shell.Binary, Binary: s.Shell.Binary})
}
