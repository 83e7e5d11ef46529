// Package uninstall reverses a zshkit installation for one account.
//
// Four steps run in a fixed order: revert the login shell, remove the
// framework directory, restore or delete the configuration file, and
// offer to remove packages. Each step is skipped when its subject is
// already gone. A failing step is reported and the next one still runs;
// nothing is rolled back.
package uninstall

import (
	"context"
	"fmt"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/arthur-debert/zshkit/pkg/zshrc"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Step names, in execution order.
const (
	StepShell     = "shell reversion"
	StepFramework = "framework removal"
	StepConfig    = "configuration restore"
	StepPackages  = "package removal"
)

// StepOutcome is the result of one step, or one package within the last step.
type StepOutcome struct {
	Step   string
	Status ui.Status
	Detail string
}

// Report collects every outcome of a run.
type Report struct {
	Outcomes []StepOutcome
}

// Failed reports whether any step failed.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == ui.StatusFailed {
			return true
		}
	}
	return false
}

// Package is a removable package and the binary that shows it is installed.
type Package struct {
	Name   string
	Binary string
}

// Coordinator runs the uninstall steps.
type Coordinator struct {
	Target   users.Identity
	FS       afero.Fs
	Store    *zshrc.Store
	Shell    system.ShellChanger
	Packages system.PackageManager
	LookPath system.LookPath
	Prompter ui.Prompter
	Out      ui.Messenger
	DryRun   bool

	// Baseline is the login shell to revert to.
	Baseline     string
	FrameworkDir string
	ConfigPath   string
	// AllowList is the system-wide shell registry, normally /etc/shells.
	AllowList string
	// ShellBinary is the binary whose registry entry is reported, never removed.
	ShellBinary string
	// Removable lists packages offered for removal, in order.
	Removable []Package

	report *Report
	logger zerolog.Logger
}

// Run asks for confirmation (unless dry-run) and then executes every step.
// Declining the confirmation returns ErrCancelled.
func (c *Coordinator) Run(ctx context.Context) (*Report, error) {
	c.report = &Report{}
	c.logger = logging.GetLogger("uninstall")
	done := logging.LogOperationStart(c.logger, "uninstall")
	defer done()

	if !c.DryRun {
		ok, err := c.Prompter.Confirm(fmt.Sprintf("Remove the zsh setup of %s?", c.Target.Name), false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New(errors.ErrCancelled, "uninstall cancelled")
		}
	}

	c.Out.Step("Reverting login shell")
	c.revertShell(ctx)
	c.Out.Step("Removing framework")
	c.removeFramework()
	c.Out.Step("Restoring configuration")
	c.restoreConfig()
	c.Out.Step("Removing packages")
	c.removePackages(ctx)

	return c.report, nil
}

func (c *Coordinator) record(step string, status ui.Status, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	c.report.Outcomes = append(c.report.Outcomes, StepOutcome{Step: step, Status: status, Detail: detail})
	c.logger.Info().Str("step", step).Str("status", string(status)).Str("detail", detail).Msg("uninstall step")
	c.Out.Print(ui.StatusLine(status, step, detail))
}

func (c *Coordinator) revertShell(ctx context.Context) {
	current, err := c.Shell.Current(ctx, c.Target)
	if err != nil {
		c.record(StepShell, ui.StatusFailed, "cannot read login shell: %v", err)
		return
	}
	if current == c.Baseline {
		c.record(StepShell, ui.StatusNothingToDo, "login shell is already %s", c.Baseline)
		return
	}
	if c.DryRun {
		c.record(StepShell, ui.StatusWouldDo, "would change login shell from %s to %s", current, c.Baseline)
		return
	}
	if err := c.Shell.Change(ctx, c.Target, c.Baseline); err != nil {
		c.record(StepShell, ui.StatusFailed, "cannot change login shell: %v", err)
		return
	}
	c.record(StepShell, ui.StatusDone, "login shell changed from %s to %s", current, c.Baseline)
}

func (c *Coordinator) removeFramework() {
	exists, err := afero.DirExists(c.FS, c.FrameworkDir)
	if err != nil {
		c.record(StepFramework, ui.StatusFailed, "cannot inspect %s: %v", c.FrameworkDir, err)
		return
	}
	if !exists {
		c.record(StepFramework, ui.StatusNothingToDo, "%s is absent", c.FrameworkDir)
		return
	}
	if c.DryRun {
		c.record(StepFramework, ui.StatusWouldDo, "would delete %s", c.FrameworkDir)
		return
	}
	if err := c.FS.RemoveAll(c.FrameworkDir); err != nil {
		c.record(StepFramework, ui.StatusFailed, "cannot delete %s: %v", c.FrameworkDir, err)
		return
	}
	c.record(StepFramework, ui.StatusDone, "deleted %s", c.FrameworkDir)
}

func (c *Coordinator) restoreConfig() {
	backup, found, err := c.Store.LatestBackup(c.ConfigPath)
	if err != nil {
		c.record(StepConfig, ui.StatusFailed, "cannot list backups: %v", err)
		return
	}

	if found {
		if c.DryRun {
			c.record(StepConfig, ui.StatusWouldDo, "would offer to restore %s", backup)
			return
		}
		restore, err := c.Prompter.Confirm(fmt.Sprintf("Restore %s from %s?", c.ConfigPath, backup), true)
		if err != nil {
			c.record(StepConfig, ui.StatusFailed, "%v", err)
			return
		}
		if restore {
			if err := c.Store.Restore(c.ConfigPath, backup); err != nil {
				c.record(StepConfig, ui.StatusFailed, "%v", err)
				return
			}
			c.record(StepConfig, ui.StatusDone, "restored %s from %s", c.ConfigPath, backup)
			return
		}
	}

	if !c.Store.Exists(c.ConfigPath) {
		c.record(StepConfig, ui.StatusNothingToDo, "no backup and no %s", c.ConfigPath)
		return
	}
	if c.DryRun {
		c.record(StepConfig, ui.StatusWouldDo, "would delete %s", c.ConfigPath)
		return
	}
	if _, err := c.Store.Remove(c.ConfigPath); err != nil {
		c.record(StepConfig, ui.StatusFailed, "%v", err)
		return
	}
	c.record(StepConfig, ui.StatusDone, "deleted %s", c.ConfigPath)
}

func (c *Coordinator) removePackages(ctx context.Context) {
	offered := 0
	for _, pkg := range c.Removable {
		if !c.LookPath.Has(pkg.Binary) {
			continue
		}
		offered++
		if c.DryRun {
			c.record(StepPackages, ui.StatusWouldDo, "would offer to remove %s", pkg.Name)
			continue
		}
		ok, err := c.Prompter.Confirm(fmt.Sprintf("Remove package %s?", pkg.Name), false)
		if err != nil {
			c.record(StepPackages, ui.StatusFailed, "%v", err)
			continue
		}
		if !ok {
			c.record(StepPackages, ui.StatusSkipped, "kept %s", pkg.Name)
			continue
		}
		if err := c.Packages.Remove(ctx, pkg.Name); err != nil {
			c.record(StepPackages, ui.StatusFailed, "cannot remove %s: %v", pkg.Name, err)
			continue
		}
		c.record(StepPackages, ui.StatusDone, "removed %s", pkg.Name)
	}
	if offered == 0 {
		c.record(StepPackages, ui.StatusNothingToDo, "no removable packages installed")
	}

	c.reportShellRegistry()
}

// reportShellRegistry mentions registered shell entries; other tooling may
// rely on them so they are left alone. The allow-list is scanned by name
// because the binary may have just been removed.
func (c *Coordinator) reportShellRegistry() {
	entries, err := system.RegisteredShells(c.FS, c.AllowList, c.ShellBinary)
	if err != nil {
		c.Out.Warn("cannot read %s: %v", c.AllowList, err)
		return
	}
	for _, path := range entries {
		c.Out.Info("%s stays listed in %s; remove it by hand if nothing else needs it", path, c.AllowList)
	}
}
