package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Provision zsh, oh-my-zsh and starship for an account"
	MsgRootLong  = `zshkit installs zsh and the oh-my-zsh framework for a user account,
lets you pick plugins from a curated catalog, optionally sets up the
starship prompt and makes zsh the login shell.

With --uninstall it reverts all of that: the login shell goes back to
bash, the framework is removed and .zshrc is restored from its most
recent backup.`
	MsgRootExample = `  # Interactive install for the current user
  zshkit

  # Preview everything for another account
  sudo zshkit -u ana --dry-run

  # Non-interactive install with three plugins and no prompt tool
  sudo zshkit -u ana -p "3 5 18" --prompt-tool no

  # Undo the installation
  sudo zshkit -u ana --uninstall`
	MsgVersionShort   = "Print version information"
	MsgVersionLong    = "Print detailed version information including commit hash and build date"
	MsgGenConfigShort = "Print the default configuration file"
	MsgGenConfigLong  = "Print the built-in defaults as TOML. Save the output to $XDG_CONFIG_HOME/zshkit/config.toml and edit it to override paths, packages or the prompt init line."

	// Prompts
	MsgAskTarget = "Account to set up"

	// Status messages
	MsgDryRunNotice  = "DRY RUN MODE - no changes will be made"
	MsgTargetFormat  = "Target account: %s (%s)"
	MsgProfileFormat = "Detected platform: %s"
	MsgUninstallDone = "Uninstall finished"
	MsgUninstallWarn = "Uninstall finished with failures; see above"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagUser       = "Account to provision (prompted when omitted)"
	MsgFlagDryRun     = "Print what would be done without changing anything"
	MsgFlagUninstall  = "Revert a previous installation"
	MsgFlagPlugins    = `Plugin choice: "all", "none" or space separated numbers`
	MsgFlagPromptTool = "Set up the starship prompt: ask, yes or no"
	MsgFlagYes        = "Answer yes to every confirmation"
	MsgFlagConfig     = "Read settings from this TOML file"
)
