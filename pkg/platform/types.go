// Package platform selects the package-manager profile for the running host.
//
// Exactly three families are supported: macOS with Homebrew, Debian-family
// Linux with APT and RHEL-family Linux with DNF (or YUM when DNF is absent).
// Anything else is refused; there is no best-guess fallback.
package platform

import "fmt"

// ID names a supported platform family. It is also the value catalog entries
// use to restrict themselves to one platform.
type ID string

const (
	MacOS  ID = "macos"
	Debian ID = "debian"
	RHEL   ID = "rhel"
)

// IDs lists every supported platform in a stable order.
func IDs() []ID {
	return []ID{MacOS, Debian, RHEL}
}

// Valid reports whether id is one of the supported platforms.
func (id ID) Valid() bool {
	for _, known := range IDs() {
		if id == known {
			return true
		}
	}
	return false
}

// Profile is the result of detection: the platform family plus the idiom for
// driving its package manager. It is built once per run and never modified.
type Profile struct {
	ID ID
	// Distro is the raw distribution identifier ("ubuntu", "rocky"); empty on macOS.
	Distro string
	// Manager is the package-manager binary: brew, apt-get, dnf or yum.
	Manager string
	// NeedsRoot is true when the manager must run as root. Homebrew refuses to.
	NeedsRoot bool
	// Env is added to every package-manager invocation.
	Env []string
}

// InstallArgv returns the command that installs pkgs.
func (p *Profile) InstallArgv(pkgs ...string) []string {
	switch p.Manager {
	case "brew":
		return append([]string{"brew", "install"}, pkgs...)
	default:
		return append([]string{p.Manager, "install", "-y"}, pkgs...)
	}
}

// RemoveArgv returns the command that removes pkgs.
func (p *Profile) RemoveArgv(pkgs ...string) []string {
	switch p.Manager {
	case "brew":
		return append([]string{"brew", "uninstall"}, pkgs...)
	default:
		return append([]string{p.Manager, "remove", "-y"}, pkgs...)
	}
}

// RefreshArgv returns the command that refreshes package metadata; it runs
// before an install in the update-then-install idiom.
func (p *Profile) RefreshArgv() []string {
	switch p.Manager {
	case "brew":
		return []string{"brew", "update"}
	case "apt-get":
		return []string{"apt-get", "update"}
	default:
		return []string{p.Manager, "makecache"}
	}
}

// String describes the profile for humans.
func (p *Profile) String() string {
	if p.Distro == "" {
		return fmt.Sprintf("%s (%s)", p.ID, p.Manager)
	}
	return fmt.Sprintf("%s/%s (%s)", p.ID, p.Distro, p.Manager)
}

// NewMacOS returns the Homebrew profile.
func NewMacOS() *Profile {
	return &Profile{ID: MacOS, Manager: "brew"}
}

// NewDebian returns the APT profile for a Debian-family distro.
func NewDebian(distro string) *Profile {
	return &Profile{
		ID:        Debian,
		Distro:    distro,
		Manager:   "apt-get",
		NeedsRoot: true,
		Env:       []string{"DEBIAN_FRONTEND=noninteractive"},
	}
}

// NewRHEL returns the DNF/YUM profile for a RHEL-family distro.
func NewRHEL(distro, manager string) *Profile {
	return &Profile{ID: RHEL, Distro: distro, Manager: manager, NeedsRoot: true}
}
