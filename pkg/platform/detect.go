package platform

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/shirou/gopsutil/v4/host"
)

// Distribution identifiers accepted per family. gopsutil reports some ids in
// its own spelling (rhel as redhat, ol as oracle, amzn as amazon) so both
// spellings are listed.
var (
	debianFamily = []string{
		"debian", "ubuntu", "linuxmint", "pop", "elementary", "zorin", "kali", "raspbian", "neon",
	}
	rhelFamily = []string{
		"fedora", "centos", "rhel", "redhat", "rocky", "almalinux", "ol", "oracle", "amzn", "amazon",
	}
)

// Detector inspects the host. Every field can be replaced in tests.
type Detector struct {
	// GOOS is the kernel family, normally runtime.GOOS.
	GOOS string
	// DistroID returns the distribution identifier on Linux.
	DistroID func(ctx context.Context) (string, error)
	// LookPath finds binaries on PATH.
	LookPath func(file string) (string, error)
}

// NewDetector returns a detector backed by the running host.
func NewDetector() *Detector {
	return &Detector{
		GOOS:     runtime.GOOS,
		DistroID: hostDistroID,
		LookPath: exec.LookPath,
	}
}

// Detect selects the profile for the host or fails with ErrUnsupportedPlatform.
func (d *Detector) Detect(ctx context.Context) (*Profile, error) {
	logger := logging.GetLogger("platform")

	switch d.GOOS {
	case "darwin":
		logger.Debug().Msg("Detected macOS")
		return NewMacOS(), nil
	case "linux":
	default:
		return nil, errors.Newf(errors.ErrUnsupportedPlatform, "unsupported operating system: %s", d.GOOS).
			WithDetail("goos", d.GOOS)
	}

	id, err := d.DistroID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnsupportedPlatform, "cannot identify Linux distribution")
	}
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, errors.New(errors.ErrUnsupportedPlatform, "Linux distribution identifier is empty")
	}

	var profile *Profile
	switch {
	case contains(debianFamily, id):
		profile = NewDebian(id)
	case contains(rhelFamily, id):
		profile = NewRHEL(id, d.rhelManager())
	default:
		return nil, errors.Newf(errors.ErrUnsupportedPlatform, "unsupported Linux distribution: %s", id).
			WithDetail("distro", id)
	}

	logger.Debug().
		Str("distro", id).
		Str("manager", profile.Manager).
		Msg("Detected Linux distribution")
	return profile, nil
}

// rhelManager prefers dnf; yum is used only when dnf is missing and yum is present.
func (d *Detector) rhelManager() string {
	if _, err := d.LookPath("dnf"); err == nil {
		return "dnf"
	}
	if _, err := d.LookPath("yum"); err == nil {
		return "yum"
	}
	return "dnf"
}

// hostDistroID reads the distribution identifier through gopsutil, which
// parses /etc/os-release (and older release files on legacy systems).
func hostDistroID(ctx context.Context) (string, error) {
	platform, _, _, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return "", err
	}
	return platform, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
