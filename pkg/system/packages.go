package system

import (
	"context"

	"github.com/arthur-debert/zshkit/pkg/executor"
	"github.com/arthur-debert/zshkit/pkg/platform"
	"github.com/arthur-debert/zshkit/pkg/users"
)

// PackageManager installs and removes OS packages.
type PackageManager interface {
	Install(ctx context.Context, pkgs ...string) error
	// UpdateInstall refreshes package metadata first, then installs.
	UpdateInstall(ctx context.Context, pkgs ...string) error
	Remove(ctx context.Context, pkgs ...string) error
}

// Packages drives the manager chosen by platform detection.
type Packages struct {
	Runner  executor.Runner
	Profile *platform.Profile
	// Admin runs managers that need root; Target runs the rest (Homebrew).
	Admin  users.Identity
	Target users.Identity
}

var _ PackageManager = (*Packages)(nil)

func (p *Packages) account() users.Identity {
	if p.Profile.NeedsRoot {
		return p.Admin
	}
	return p.Target
}

func (p *Packages) run(ctx context.Context, argv []string) error {
	cmd := executor.NewCommand(argv...).WithEnv(p.Profile.Env...)
	return p.Runner.Run(ctx, cmd, p.account())
}

// Install installs pkgs.
func (p *Packages) Install(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	return p.run(ctx, p.Profile.InstallArgv(pkgs...))
}

// UpdateInstall refreshes metadata, then installs pkgs.
func (p *Packages) UpdateInstall(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	if err := p.run(ctx, p.Profile.RefreshArgv()); err != nil {
		return err
	}
	return p.Install(ctx, pkgs...)
}

// Remove uninstalls pkgs.
func (p *Packages) Remove(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	return p.run(ctx, p.Profile.RemoveArgv(pkgs...))
}
