package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "ZSHKIT_"

	// UserConfigRelPath is searched for under the XDG config directories.
	UserConfigRelPath = "zshkit/config.toml"
)

// Load builds Settings from the embedded defaults, an optional user file and
// the environment. An explicit path must exist; the XDG file is optional.
func Load(path string) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	userFile, err := resolveUserFile(path)
	if err != nil {
		return nil, err
	}
	if userFile != "" {
		logger.Debug().Str("path", userFile).Msg("Loading user settings")
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", userFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// MustDefaults returns the embedded defaults. It panics if the embedded file
// does not parse.
func MustDefaults() *Settings {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return &s
}

func resolveUserFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s", path)
		}
		return path, nil
	}
	found, err := xdg.SearchConfigFile(UserConfigRelPath)
	if err != nil {
		// not finding one is the common case
		return "", nil
	}
	return found, nil
}

// envKey maps ZSHKIT_SHELL__BASELINE to shell.baseline.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// Validate rejects settings that would make paths or commands meaningless.
func (s *Settings) Validate() error {
	required := map[string]string{
		"framework.dir_name":    s.Framework.DirName,
		"framework.install_url": s.Framework.InstallURL,
		"framework.config_file": s.Framework.ConfigFile,
		"shell.binary":          s.Shell.Binary,
		"shell.baseline":        s.Shell.Baseline,
		"prompt.binary":         s.Prompt.Binary,
		"prompt.init_line":      s.Prompt.InitLine,
		"prompt.style_file":     s.Prompt.StyleFile,
		"backup.infix":          s.Backup.Infix,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Newf(errors.ErrConfigParse, "setting %s must not be empty", key).
				WithDetail("key", key)
		}
	}
	if s.Plugins.CloneDepth < 1 {
		return errors.Newf(errors.ErrConfigParse, "plugins.clone_depth must be at least 1, got %d", s.Plugins.CloneDepth)
	}
	return nil
}
