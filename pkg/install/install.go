// Package install runs the provisioning flow for one account: prerequisite
// packages, the framework bootstrap, plugin selection, the optional prompt
// tool and the login shell.
package install

import (
	"context"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/arthur-debert/zshkit/pkg/config"
	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"github.com/arthur-debert/zshkit/pkg/plugins"
	"github.com/arthur-debert/zshkit/pkg/prompt"
	"github.com/arthur-debert/zshkit/pkg/selection"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// PromptMode says whether to set up the prompt tool.
type PromptMode string

const (
	PromptAsk PromptMode = "ask"
	PromptYes PromptMode = "yes"
	PromptNo  PromptMode = "no"
)

// ParsePromptMode validates a --prompt-tool value.
func ParsePromptMode(s string) (PromptMode, error) {
	switch m := PromptMode(strings.ToLower(s)); m {
	case PromptAsk, PromptYes, PromptNo:
		return m, nil
	case "":
		return PromptAsk, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "invalid prompt tool mode %q: use ask, yes or no", s)
	}
}

// Installer is the install flow with all of its collaborators.
type Installer struct {
	Settings  *config.Settings
	Profile   *platform.Profile
	Target    users.Identity
	FS        afero.Fs
	Catalog   *catalog.Catalog
	Packages  system.PackageManager
	Bootstrap system.Bootstrapper
	Shell     system.ShellChanger
	LookPath  system.LookPath
	Writer    *plugins.Writer
	Prompt    *prompt.Configurator
	Prompter  ui.Prompter
	Out       ui.Messenger
	DryRun    bool

	// PluginInput, when set, answers the plugin question without asking.
	PluginInput *string
	PromptMode  PromptMode

	logger zerolog.Logger
}

// Run provisions the target account. Fatal problems abort with an error;
// everything else is reported and the flow continues.
func (i *Installer) Run(ctx context.Context) (*Summary, error) {
	i.logger = logging.GetLogger("install")
	done := logging.LogOperationStart(i.logger, "install")
	defer done()

	home := i.Target.Home
	configPath := i.Settings.ConfigPath(home)
	summary := &Summary{
		Target:     i.Target.Name,
		Platform:   i.Profile.String(),
		ConfigPath: configPath,
		DryRun:     i.DryRun,
	}

	i.Out.Step("Checking %s", i.Profile.Manager)
	if err := i.checkManager(); err != nil {
		return nil, err
	}

	i.Out.Step("Installing prerequisites")
	if err := i.installPrerequisites(ctx); err != nil {
		return nil, err
	}

	i.Out.Step("Installing the framework")
	if err := i.bootstrap(ctx, i.Settings.FrameworkDir(home)); err != nil {
		return nil, err
	}

	i.Out.Step("Choosing plugins")
	set, err := i.choosePlugins()
	if err != nil {
		return nil, err
	}
	summary.Plugins = set.Names()

	i.Out.Step("Writing plugin configuration")
	res, err := i.Writer.Apply(ctx, set, configPath)
	if err != nil {
		return nil, err
	}
	summary.PluginLine = res.Line
	summary.Backups = appendNonEmpty(summary.Backups, res.Backup)

	i.Out.Step("Prompt tool")
	pres, err := i.configurePrompt(ctx, configPath)
	if err != nil {
		return nil, err
	}
	if pres != nil {
		if !pres.Skipped {
			summary.Prompt = i.Prompt.Binary
		}
		summary.Backups = appendNonEmpty(summary.Backups, pres.Backup)
	}

	i.Out.Step("Login shell")
	summary.Shell = i.changeShell(ctx)

	return summary, nil
}

func (i *Installer) checkManager() error {
	if i.LookPath.Has(i.Profile.Manager) {
		return nil
	}
	if i.DryRun {
		i.Out.Warn("%s is not on PATH; a real run would stop here", i.Profile.Manager)
		return nil
	}
	return errors.Newf(errors.ErrMissingPrerequisite, "%s is required on %s but was not found", i.Profile.Manager, i.Profile.ID).
		WithDetail("manager", i.Profile.Manager)
}

func (i *Installer) installPrerequisites(ctx context.Context) error {
	var missing []string
	for _, pkg := range i.Settings.Packages.Prerequisites {
		if !i.LookPath.Has(pkg) {
			missing = append(missing, pkg)
		}
	}
	if len(missing) == 0 {
		i.Out.Info("%s already installed", strings.Join(i.Settings.Packages.Prerequisites, ", "))
		return nil
	}
	if err := i.Packages.UpdateInstall(ctx, missing...); err != nil {
		return errors.Wrapf(err, errors.ErrMissingPrerequisite, "cannot install %s", strings.Join(missing, ", "))
	}
	i.Out.Success("Installed %s", strings.Join(missing, ", "))
	return nil
}

func (i *Installer) bootstrap(ctx context.Context, frameworkDir string) error {
	if exists, _ := afero.DirExists(i.FS, frameworkDir); exists {
		i.Out.Info("%s already present, skipping the installer", frameworkDir)
		return nil
	}
	if err := i.Bootstrap.Install(ctx, i.Settings.Framework.InstallURL); err != nil {
		return errors.Wrap(err, errors.ErrCommandFailed, "framework installer failed")
	}
	if !i.DryRun {
		i.Out.Success("Installed framework into %s", frameworkDir)
	}
	return nil
}

func (i *Installer) choosePlugins() (selection.Set, error) {
	listing := i.Catalog.ListSelectable(i.Profile.ID)

	var input string
	switch {
	case i.PluginInput != nil:
		input = *i.PluginInput
	case i.DryRun:
		input = "all"
		i.Out.Info("Dry run: previewing with all %d plugins", len(listing))
	default:
		i.Out.Print(ui.RenderListing(listing))
		answer, err := i.Prompter.Ask("Plugins to enable (all, none or numbers separated by spaces)", "all")
		if err != nil {
			return nil, err
		}
		input = answer
	}

	res := selection.Select(input, listing)
	for _, w := range res.Warnings {
		i.Out.Warn("%s", w)
	}
	i.Out.Info("Selected: %s", strings.Join(res.Set.Names(), " "))
	return res.Set, nil
}

func (i *Installer) configurePrompt(ctx context.Context, configPath string) (*prompt.Result, error) {
	switch i.PromptMode {
	case PromptNo:
		i.Out.Info("Skipping %s", i.Prompt.Binary)
		return nil, nil
	case PromptAsk:
		if !i.DryRun {
			ok, err := i.Prompter.Confirm("Install and enable the "+i.Prompt.Binary+" prompt?", true)
			if err != nil {
				return nil, err
			}
			if !ok {
				i.Out.Info("Skipping %s", i.Prompt.Binary)
				return nil, nil
			}
		}
	}
	return i.Prompt.Configure(ctx, configPath)
}

// changeShell makes zsh the login shell. Problems are reported, not returned.
func (i *Installer) changeShell(ctx context.Context) string {
	zsh, err := i.LookPath(i.Settings.Shell.Binary)
	if err != nil {
		if !i.DryRun {
			i.Out.Warn("%s not found on PATH, login shell unchanged", i.Settings.Shell.Binary)
			return ""
		}
		zsh = i.Settings.Shell.Binary
	}

	current, err := i.Shell.Current(ctx, i.Target)
	if err != nil {
		i.Out.Warn("Cannot read the login shell of %s: %v", i.Target.Name, err)
		return ""
	}
	if current == zsh {
		i.Out.Info("Login shell is already %s", zsh)
		return zsh
	}

	if ok, _ := system.ShellRegistered(i.FS, i.Settings.Shell.AllowList, zsh); !ok {
		i.Out.Warn("%s is not listed in %s; chsh may refuse it", zsh, i.Settings.Shell.AllowList)
	}
	if err := i.Shell.Change(ctx, i.Target, zsh); err != nil {
		i.Out.Warn("Could not change the login shell: %v", err)
		return current
	}
	if !i.DryRun {
		i.Out.Success("Login shell of %s is now %s", i.Target.Name, zsh)
	}
	return zsh
}

func appendNonEmpty(list []string, s string) []string {
	if s == "" {
		return list
	}
	return append(list, s)
}
