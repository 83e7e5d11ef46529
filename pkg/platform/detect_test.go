package platform

import (
	"context"
	stderrors "errors"
	"os/exec"
	"testing"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeDetector(goos, distro string, onPath ...string) *Detector {
	return &Detector{
		GOOS: goos,
		DistroID: func(context.Context) (string, error) {
			return distro, nil
		},
		LookPath: func(file string) (string, error) {
			for _, p := range onPath {
				if p == file {
					return "/usr/bin/" + file, nil
				}
			}
			return "", exec.ErrNotFound
		},
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		goos        string
		distro      string
		onPath      []string
		wantID      ID
		wantManager string
	}{
		{"macos", "darwin", "", nil, MacOS, "brew"},
		{"ubuntu", "linux", "ubuntu", nil, Debian, "apt-get"},
		{"debian uppercase and padded", "linux", " Debian\n", nil, Debian, "apt-get"},
		{"mint", "linux", "linuxmint", nil, Debian, "apt-get"},
		{"fedora with dnf and yum prefers dnf", "linux", "fedora", []string{"dnf", "yum"}, RHEL, "dnf"},
		{"centos with only yum", "linux", "centos", []string{"yum"}, RHEL, "yum"},
		{"rocky with neither defaults to dnf", "linux", "rocky", nil, RHEL, "dnf"},
		{"gopsutil redhat spelling", "linux", "redhat", []string{"dnf"}, RHEL, "dnf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := fakeDetector(tt.goos, tt.distro, tt.onPath...).Detect(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, tt.wantManager, p.Manager)
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		distro string
	}{
		{"windows", "windows", ""},
		{"freebsd", "freebsd", ""},
		{"arch linux", "linux", "arch"},
		{"empty distro", "linux", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fakeDetector(tt.goos, tt.distro).Detect(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPlatform))
		})
	}
}

func TestDetect_DistroReadFailure(t *testing.T) {
	d := fakeDetector("linux", "")
	d.DistroID = func(context.Context) (string, error) {
		return "", stderrors.New("open /etc/os-release: no such file or directory")
	}

	_, err := d.Detect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPlatform))
}

func TestProfileArgv(t *testing.T) {
	brew := NewMacOS()
	assert.Equal(t, []string{"brew", "install", "fzf"}, brew.InstallArgv("fzf"))
	assert.Equal(t, []string{"brew", "uninstall", "starship"}, brew.RemoveArgv("starship"))
	assert.Equal(t, []string{"brew", "update"}, brew.RefreshArgv())
	assert.False(t, brew.NeedsRoot)

	apt := NewDebian("ubuntu")
	assert.Equal(t, []string{"apt-get", "install", "-y", "zsh", "git"}, apt.InstallArgv("zsh", "git"))
	assert.Equal(t, []string{"apt-get", "remove", "-y", "zsh"}, apt.RemoveArgv("zsh"))
	assert.Equal(t, []string{"apt-get", "update"}, apt.RefreshArgv())
	assert.Contains(t, apt.Env, "DEBIAN_FRONTEND=noninteractive")
	assert.True(t, apt.NeedsRoot)

	yum := NewRHEL("centos", "yum")
	assert.Equal(t, []string{"yum", "install", "-y", "curl"}, yum.InstallArgv("curl"))
	assert.Equal(t, []string{"yum", "makecache"}, yum.RefreshArgv())
}

func TestIDValid(t *testing.T) {
	assert.True(t, MacOS.Valid())
	assert.True(t, RHEL.Valid())
	assert.False(t, ID("windows").Valid())
}

func TestProfileString(t *testing.T) {
	assert.Equal(t, "macos (brew)", NewMacOS().String())
	assert.Equal(t, "debian/ubuntu (apt-get)", NewDebian("ubuntu").String())
}
