// Package prompt wires an alternative prompt renderer into the shell: it
// installs the tool, disables the framework theme, adds the init line and
// seeds a style file.
package prompt

import (
	"context"

	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/zshrc"
)

// Result describes what Configure did, or in dry-run would do.
type Result struct {
	// Skipped is set when the tool could not be installed; nothing else ran.
	Skipped      bool
	Installed    bool
	ThemeBlanked bool
	InitAdded    bool
	StyleWritten bool
	Backup       string
}

// Configurator sets up the prompt tool for one account.
type Configurator struct {
	Store    *zshrc.Store
	Packages system.PackageManager
	LookPath system.LookPath
	// Binary is looked up on PATH; Package is what gets installed.
	Binary    string
	Package   string
	InitLine  string
	StylePath string
	DryRun    bool
	Out       ui.Messenger
}

// Configure installs the tool if needed and updates configPath. Running it
// again changes nothing. A failed install is reported and the remaining
// steps are skipped without error.
func (c *Configurator) Configure(ctx context.Context, configPath string) (*Result, error) {
	logger := logging.GetLogger("prompt")
	res := &Result{}

	if !c.LookPath.Has(c.Binary) {
		c.Out.Info("Installing %s", c.Package)
		if err := c.Packages.Install(ctx, c.Package); err != nil {
			logger.Warn().Err(err).Str("package", c.Package).Msg("prompt tool install failed")
			c.Out.Warn("Could not install %s, leaving the prompt unchanged: %v", c.Package, err)
			res.Skipped = true
			return res, nil
		}
		res.Installed = true
	}

	if err := c.updateConfig(configPath, res); err != nil {
		return nil, err
	}
	if err := c.seedStyle(res); err != nil {
		return nil, err
	}
	logger.Info().
		Bool("theme_blanked", res.ThemeBlanked).
		Bool("init_added", res.InitAdded).
		Bool("style_written", res.StyleWritten).
		Msg("prompt configured")
	return res, nil
}

func (c *Configurator) updateConfig(configPath string, res *Result) error {
	if c.DryRun && !c.Store.Exists(configPath) {
		c.Out.Info("Would blank the theme and add %s to %s", c.InitLine, configPath)
		return nil
	}
	doc, err := c.Store.Load(configPath)
	if err != nil {
		return err
	}
	res.ThemeBlanked = doc.BlankTheme()
	res.InitAdded = doc.EnsureLine(c.InitLine)

	if !res.ThemeBlanked && !res.InitAdded {
		c.Out.Info("%s already set up for %s", configPath, c.Binary)
		return nil
	}
	if c.DryRun {
		if res.ThemeBlanked {
			c.Out.Info("Would set %s in %s", zshrc.BlankTheme, configPath)
		}
		if res.InitAdded {
			c.Out.Info("Would add %s to %s", c.InitLine, configPath)
		}
		return nil
	}

	if res.Backup, err = c.Store.Backup(configPath); err != nil {
		return err
	}
	if err := c.Store.Save(configPath, doc); err != nil {
		return err
	}
	c.Out.Success("Enabled %s in %s", c.Binary, configPath)
	return nil
}

func (c *Configurator) seedStyle(res *Result) error {
	if c.Store.Exists(c.StylePath) {
		c.Out.Info("Keeping existing %s", c.StylePath)
		return nil
	}
	if c.DryRun {
		c.Out.Info("Would write a default style to %s", c.StylePath)
		return nil
	}
	content, err := DefaultStyle()
	if err != nil {
		return err
	}
	if res.StyleWritten, err = c.Store.WriteNew(c.StylePath, content); err != nil {
		return err
	}
	c.Out.Success("Wrote default style to %s", c.StylePath)
	return nil
}
