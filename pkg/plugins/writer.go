package plugins

import (
	"context"

	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/selection"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/zshrc"
)

// Result describes what Apply did.
type Result struct {
	// Line is the plugin-list line that was, or in dry-run would be, written.
	Line string
	// Backup is the backup taken before writing; empty in dry-run.
	Backup string
	// Replaced is true when an existing line was replaced rather than appended.
	Replaced bool
	Fetched  map[string]FetchAction
}

// Writer applies a selection to a configuration file.
type Writer struct {
	Store   *zshrc.Store
	Fetcher *Fetcher
	// PluginDir returns the checkout directory of an external plugin.
	PluginDir func(name string) string
	DryRun    bool
	Out       ui.Messenger
}

// Apply fetches external plugins in selection order, then writes the
// plugin-list line after backing up configPath.
func (w *Writer) Apply(ctx context.Context, set selection.Set, configPath string) (*Result, error) {
	logger := logging.GetLogger("plugins")
	done := logging.LogOperationStart(logger, "apply plugins")
	defer done()

	res := &Result{Line: zshrc.PluginLine(set.Names()), Fetched: map[string]FetchAction{}}

	for _, d := range set.Externals() {
		action, err := w.Fetcher.EnsureFetched(ctx, d, w.PluginDir(d.Name))
		if err != nil {
			return nil, err
		}
		res.Fetched[d.Name] = action
	}

	doc, err := w.Store.Load(configPath)
	if err != nil {
		if w.DryRun && !w.Store.Exists(configPath) {
			// the framework installer has not actually run in dry-run
			w.Out.Info("Would write %s to %s", res.Line, configPath)
			return res, nil
		}
		return nil, err
	}
	_, res.Replaced = doc.PluginLineValue()

	if w.DryRun {
		verb := "append"
		if res.Replaced {
			verb = "replace the plugin line with"
		}
		w.Out.Info("Would back up %s and %s %s", configPath, verb, res.Line)
		return res, nil
	}

	if res.Backup, err = w.Store.Backup(configPath); err != nil {
		return nil, err
	}
	doc.SetPluginLine(res.Line)
	if err := w.Store.Save(configPath, doc); err != nil {
		return nil, err
	}

	logger.Info().Str("line", res.Line).Str("backup", res.Backup).Bool("replaced", res.Replaced).Msg("plugin line written")
	w.Out.Success("Wrote %s to %s", res.Line, configPath)
	return res, nil
}
