package config

import (
	"path/filepath"
)

// Settings is the typed view of every configurable value.
type Settings struct {
	Framework FrameworkSettings `koanf:"framework"`
	Shell     ShellSettings     `koanf:"shell"`
	Prompt    PromptSettings    `koanf:"prompt"`
	Backup    BackupSettings    `koanf:"backup"`
	Plugins   PluginSettings    `koanf:"plugins"`
	Packages  PackageSettings   `koanf:"packages"`
}

// FrameworkSettings locate the oh-my-zsh installation of a user.
type FrameworkSettings struct {
	DirName          string `koanf:"dir_name"`
	InstallURL       string `koanf:"install_url"`
	ConfigFile       string `koanf:"config_file"`
	CustomPluginsDir string `koanf:"custom_plugins_dir"`
}

// ShellSettings describe the login shells zshkit switches between.
type ShellSettings struct {
	Binary    string `koanf:"binary"`
	Baseline  string `koanf:"baseline"`
	AllowList string `koanf:"allow_list"`
}

// PromptSettings configure the optional prompt renderer.
type PromptSettings struct {
	Binary    string `koanf:"binary"`
	Package   string `koanf:"package"`
	InitLine  string `koanf:"init_line"`
	StyleFile string `koanf:"style_file"`
}

// BackupSettings control the naming of .zshrc backups.
type BackupSettings struct {
	Infix string `koanf:"infix"`
}

// PluginSettings control how external plugins are fetched.
type PluginSettings struct {
	CloneDepth int `koanf:"clone_depth"`
	// RuntimeDeps maps a plugin name to the binary (and package) it needs on PATH.
	RuntimeDeps map[string]string `koanf:"runtime_deps"`
}

// PackageSettings list the packages every installation needs.
type PackageSettings struct {
	Prerequisites []string `koanf:"prerequisites"`
}

// FrameworkDir returns the framework root for a home directory.
func (s *Settings) FrameworkDir(home string) string {
	return filepath.Join(home, s.Framework.DirName)
}

// ConfigPath returns the shell configuration file for a home directory.
func (s *Settings) ConfigPath(home string) string {
	return filepath.Join(home, s.Framework.ConfigFile)
}

// PluginDir returns where an external plugin is cloned for a home directory.
func (s *Settings) PluginDir(home, plugin string) string {
	return filepath.Join(s.FrameworkDir(home), s.Framework.CustomPluginsDir, plugin)
}

// StylePath returns the prompt style file for a home directory.
func (s *Settings) StylePath(home string) string {
	return filepath.Join(home, s.Prompt.StyleFile)
}
