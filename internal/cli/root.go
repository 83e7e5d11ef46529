package cli

import (
	"fmt"

	"github.com/arthur-debert/zshkit/internal/version"
	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/arthur-debert/zshkit/pkg/config"
	"github.com/arthur-debert/zshkit/pkg/install"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Options holds the parsed command line.
type Options struct {
	Verbosity  int
	User       string
	DryRun     bool
	Uninstall  bool
	Plugins    string
	PluginsSet bool
	PromptTool install.PromptMode
	Yes        bool
	ConfigPath string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &Options{}
	var promptTool string

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "zshkit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.Verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			mode, err := install.ParsePromptMode(promptTool)
			if err != nil {
				return err
			}
			opts.PromptTool = mode
			opts.PluginsSet = cmd.Flags().Changed("plugins")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", MsgFlagConfig)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.User, "user", "u", "", MsgFlagUser)
	flags.BoolVarP(&opts.DryRun, "dry-run", "n", false, MsgFlagDryRun)
	flags.BoolVar(&opts.Uninstall, "uninstall", false, MsgFlagUninstall)
	flags.StringVarP(&opts.Plugins, "plugins", "p", "", MsgFlagPlugins)
	flags.StringVar(&promptTool, "prompt-tool", string(install.PromptAsk), MsgFlagPromptTool)
	flags.BoolVarP(&opts.Yes, "yes", "y", false, MsgFlagYes)
	rootCmd.MarkFlagsMutuallyExclusive("uninstall", "plugins")

	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.SetVersionTemplate(version.String() + "\n")
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if cmd != cmd.Root() {
			return
		}
		if c, err := catalog.Load(); err == nil {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderCatalogHelp(c.Entries()))
		}
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenConfigCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "zshkit version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-config",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
		},
	}
}
