package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/testutil"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/arthur-debert/zshkit/pkg/zshrc"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rc        = "/home/ana/.zshrc"
	stylePath = "/home/ana/.config/starship.toml"
	initLine  = `eval "$(starship init zsh)"`
)

const themedRC = `export ZSH="$HOME/.oh-my-zsh"
ZSH_THEME="robbyrussell"
plugins=(git)
source $ZSH/oh-my-zsh.sh
`

func newConfigurator(t *testing.T, files map[string]string, dryRun bool, onPath ...string) (*Configurator, afero.Fs, *testutil.Packages, *bytes.Buffer) {
	t.Helper()
	fs := testutil.NewMemFS(t, files)
	pkgs := &testutil.Packages{}
	out := &bytes.Buffer{}
	return &Configurator{
		Store:     zshrc.NewStore(fs, ".backup-"),
		Packages:  pkgs,
		LookPath:  testutil.LookPath(onPath...),
		Binary:    "starship",
		Package:   "starship",
		InitLine:  initLine,
		StylePath: stylePath,
		DryRun:    dryRun,
		Out:       ui.NewReporter(out),
	}, fs, pkgs, out
}

func TestConfigure_FreshInstall(t *testing.T) {
	c, fs, pkgs, _ := newConfigurator(t, map[string]string{rc: themedRC}, false)

	res, err := c.Configure(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, []string{"starship"}, pkgs.Installed)
	assert.True(t, res.Installed)
	assert.True(t, res.ThemeBlanked)
	assert.True(t, res.InitAdded)
	assert.True(t, res.StyleWritten)
	assert.NotEmpty(t, res.Backup)

	content := testutil.ReadFile(t, fs, rc)
	assert.Contains(t, content, "ZSH_THEME=\"\"\n")
	assert.True(t, strings.HasSuffix(content, initLine+"\n"))
	assert.Equal(t, themedRC, testutil.ReadFile(t, fs, res.Backup))
}

func TestConfigure_Idempotent(t *testing.T) {
	c, fs, _, _ := newConfigurator(t, map[string]string{rc: themedRC}, false, "starship")

	_, err := c.Configure(context.Background(), rc)
	require.NoError(t, err)
	first := testutil.ReadFile(t, fs, rc)

	res, err := c.Configure(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, first, testutil.ReadFile(t, fs, rc))
	assert.Equal(t, 1, strings.Count(first, initLine))
	assert.False(t, res.InitAdded)
	assert.False(t, res.ThemeBlanked)
	assert.Empty(t, res.Backup, "no change, no backup")
}

func TestConfigure_KeepsExistingStyle(t *testing.T) {
	c, fs, _, _ := newConfigurator(t, map[string]string{rc: themedRC, stylePath: "format = \"$all\"\n"}, false, "starship")

	res, err := c.Configure(context.Background(), rc)
	require.NoError(t, err)

	assert.False(t, res.StyleWritten)
	assert.Equal(t, "format = \"$all\"\n", testutil.ReadFile(t, fs, stylePath))
}

func TestConfigure_InstallFailureSkipsRest(t *testing.T) {
	c, fs, pkgs, out := newConfigurator(t, map[string]string{rc: themedRC}, false)
	pkgs.Fail = map[string]bool{"starship": true}

	res, err := c.Configure(context.Background(), rc)
	require.NoError(t, err)

	assert.True(t, res.Skipped)
	assert.Equal(t, themedRC, testutil.ReadFile(t, fs, rc))
	exists, _ := afero.Exists(fs, stylePath)
	assert.False(t, exists)
	assert.Contains(t, out.String(), "Could not install starship")
}

func TestConfigure_DryRunChangesNothing(t *testing.T) {
	c, fs, _, out := newConfigurator(t, map[string]string{rc: themedRC}, true, "starship")
	before := testutil.Snapshot(t, fs)

	res, err := c.Configure(context.Background(), rc)
	require.NoError(t, err)

	assert.Equal(t, before, testutil.Snapshot(t, fs))
	assert.True(t, res.InitAdded, "reports the intended change")
	assert.Empty(t, res.Backup)
	assert.Contains(t, out.String(), "Would add")
	assert.Contains(t, out.String(), "Would write a default style")
}

func TestConfigure_MissingConfig(t *testing.T) {
	c, _, _, _ := newConfigurator(t, nil, false, "starship")

	_, err := c.Configure(context.Background(), rc)
	assert.True(t, errors.IsErrorCode(err, errors.ErrZshrcMissing))
}

func TestDefaultStyle_IsValidTOML(t *testing.T) {
	content, err := DefaultStyle()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(content), "# Written by zshkit"))

	var parsed style
	require.NoError(t, toml.Unmarshal(content, &parsed))
	assert.Equal(t, defaultStyle(), parsed)
}
