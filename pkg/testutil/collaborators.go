package testutil

import (
	"context"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/system"
	"github.com/arthur-debert/zshkit/pkg/users"
)

// Packages is a recording system.PackageManager.
type Packages struct {
	Installed []string
	Updated   []string
	Removed   []string
	// Fail makes any call touching one of these packages fail.
	Fail map[string]bool
}

var _ system.PackageManager = (*Packages)(nil)

func (p *Packages) check(pkgs []string) error {
	for _, pkg := range pkgs {
		if p.Fail[pkg] {
			return errors.Newf(errors.ErrCommandFailed, "installing %s failed", pkg)
		}
	}
	return nil
}

func (p *Packages) Install(_ context.Context, pkgs ...string) error {
	if err := p.check(pkgs); err != nil {
		return err
	}
	p.Installed = append(p.Installed, pkgs...)
	return nil
}

func (p *Packages) UpdateInstall(_ context.Context, pkgs ...string) error {
	if err := p.check(pkgs); err != nil {
		return err
	}
	p.Updated = append(p.Updated, pkgs...)
	return nil
}

func (p *Packages) Remove(_ context.Context, pkgs ...string) error {
	if err := p.check(pkgs); err != nil {
		return err
	}
	p.Removed = append(p.Removed, pkgs...)
	return nil
}

// VCS is a recording system.VCS.
type VCS struct {
	Cloned []string
	Pulled []string

	CloneFunc func(url, dir string, depth int) error
	PullFunc  func(dir string) error
}

var _ system.VCS = (*VCS)(nil)

func (v *VCS) Clone(_ context.Context, url, dir string, depth int) error {
	v.Cloned = append(v.Cloned, url+" -> "+dir)
	if v.CloneFunc != nil {
		return v.CloneFunc(url, dir, depth)
	}
	return nil
}

func (v *VCS) Pull(_ context.Context, dir string) error {
	v.Pulled = append(v.Pulled, dir)
	if v.PullFunc != nil {
		return v.PullFunc(dir)
	}
	return nil
}

// Shell is an in-memory system.ShellChanger.
type Shell struct {
	// Shells maps account names to their login shell.
	Shells  map[string]string
	Changes []string

	ChangeErr error
}

var _ system.ShellChanger = (*Shell)(nil)

func (s *Shell) Current(_ context.Context, account users.Identity) (string, error) {
	sh, ok := s.Shells[account.Name]
	if !ok {
		return "", errors.Newf(errors.ErrUserLookup, "no passwd entry for %s", account.Name)
	}
	return sh, nil
}

func (s *Shell) Change(_ context.Context, account users.Identity, shell string) error {
	if s.ChangeErr != nil {
		return s.ChangeErr
	}
	if s.Shells == nil {
		s.Shells = map[string]string{}
	}
	s.Shells[account.Name] = shell
	s.Changes = append(s.Changes, account.Name+" -> "+shell)
	return nil
}

// Bootstrapper is a recording system.Bootstrapper.
type Bootstrapper struct {
	URLs []string
	// InstallFunc runs after recording, typically to create the framework tree.
	InstallFunc func(url string) error
}

var _ system.Bootstrapper = (*Bootstrapper)(nil)

func (b *Bootstrapper) Install(_ context.Context, url string) error {
	b.URLs = append(b.URLs, url)
	if b.InstallFunc != nil {
		return b.InstallFunc(url)
	}
	return nil
}

// LookPath returns a system.LookPath that finds exactly the given binaries
// under /usr/bin.
func LookPath(found ...string) system.LookPath {
	set := make(map[string]bool, len(found))
	for _, f := range found {
		set[f] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + strings.TrimPrefix(file, "/"), nil
		}
		return "", errors.Newf(errors.ErrNotFound, "%s not found in PATH", file)
	}
}
