// Package config loads zshkit settings.
//
// Settings are layered with koanf, later layers overriding earlier ones:
//
//  1. embedded/defaults.toml, compiled into the binary
//  2. a user file: the --config path, or $XDG_CONFIG_HOME/zshkit/config.toml
//  3. ZSHKIT_ environment variables, with "__" separating sections
//     (ZSHKIT_SHELL__BASELINE=/bin/sh sets shell.baseline)
//
// The result is unmarshalled once into an immutable Settings value that the
// command layer hands to every component.
package config
