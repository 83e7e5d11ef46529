// Package plugins materializes a plugin selection: it fetches external
// plugins and writes the plugin-list line into the configuration file.
package plugins

import (
	"context"

	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/spf13/afero"
)

// FetchAction is what EnsureFetched did to a checkout.
type FetchAction string

const (
	Cloned  FetchAction = "cloned"
	Updated FetchAction = "updated"
	// UpdateFailed means an existing checkout could not be refreshed; the
	// old checkout is still used.
	UpdateFailed FetchAction = "update failed"
)

// Fetcher makes sure external plugin sources are present.
type Fetcher struct {
	FS       afero.Fs
	VCS      system.VCS
	Packages system.PackageManager
	LookPath system.LookPath
	// RuntimeDeps maps a plugin name to the binary (and package) it needs.
	RuntimeDeps map[string]string
	CloneDepth  int
	Out         ui.Messenger
}

// EnsureFetched installs d's runtime dependency if missing, then clones d
// into dir or, when dir already exists, pulls it.
//
// A failed clone is an error. A failed pull or dependency install is
// reported and tolerated.
func (f *Fetcher) EnsureFetched(ctx context.Context, d catalog.Descriptor, dir string) (FetchAction, error) {
	if d.Kind != catalog.External {
		return "", errors.Newf(errors.ErrInvalidInput, "%s is bundled and needs no fetch", d.Name)
	}

	f.ensureRuntimeDep(ctx, d)

	if exists, _ := afero.DirExists(f.FS, dir); exists {
		if err := f.VCS.Pull(ctx, dir); err != nil {
			f.Out.Warn("Could not update %s, keeping the existing copy: %v", d.Name, err)
			return UpdateFailed, nil
		}
		return Updated, nil
	}

	if err := f.VCS.Clone(ctx, d.Source, dir, f.CloneDepth); err != nil {
		return "", errors.Wrapf(err, errors.ErrCommandFailed, "cannot fetch plugin %s", d.Name).
			WithDetail("source", d.Source).
			WithDetail("dir", dir)
	}
	return Cloned, nil
}

func (f *Fetcher) ensureRuntimeDep(ctx context.Context, d catalog.Descriptor) {
	dep, ok := f.RuntimeDeps[d.Name]
	if !ok || dep == "" {
		return
	}
	if f.LookPath != nil && f.LookPath.Has(dep) {
		return
	}
	f.Out.Info("%s needs %s, installing it", d.Name, dep)
	if err := f.Packages.Install(ctx, dep); err != nil {
		f.Out.Warn("Could not install %s for %s: %v", dep, d.Name, err)
	}
}
