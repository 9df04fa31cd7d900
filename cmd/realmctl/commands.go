// Package realmctl holds the cobra command tree of the realmctl CLI.
package realmctl

import (
	"embed"
	"fmt"

	"github.com/arthur-debert/realmctl/internal/version"
	"github.com/arthur-debert/realmctl/pkg/cobrax/topics"
	"github.com/arthur-debert/realmctl/pkg/config"
	"github.com/arthur-debert/realmctl/pkg/filesystem"
	"github.com/arthur-debert/realmctl/pkg/logging"
	"github.com/arthur-debert/realmctl/pkg/paths"
	"github.com/arthur-debert/realmctl/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// app is the state shared by every command of one invocation
type app struct {
	verbosity  int
	dryRun     bool
	configFile string

	fs       types.FS
	paths    paths.Paths
	settings *config.Settings
}

// setup resolves paths and settings; it runs before every command
func (a *app) setup() error {
	p, err := paths.New(a.configFile)
	if err != nil {
		logging.SetupLogger(a.verbosity, "")
		return fmt.Errorf(MsgErrInitPaths, err)
	}
	a.paths = p
	logging.SetupLogger(a.verbosity, p.LogFilePath())

	settings, err := config.LoadSettings(p.SettingsFile())
	if err != nil {
		return fmt.Errorf(MsgErrLoadSettings, err)
	}
	a.settings = settings

	log.Debug().
		Str("config", p.ConfigFile()).
		Str("settings", p.SettingsFile()).
		Msg("Paths resolved")
	return nil
}

// games loads config.toml
func (a *app) games() (config.File, error) {
	return config.Load(a.paths.ConfigFile())
}

// game loads config.toml and looks up name
func (a *app) game(name string) (config.Game, error) {
	file, err := a.games()
	if err != nil {
		return config.Game{}, err
	}
	return file.Lookup(name)
}

// workspaceRoot returns where new workspaces go when --workspace-root is unset
func (a *app) workspaceRoot() string {
	if a.settings != nil && a.settings.WorkspaceRoot != "" {
		return paths.ExpandHome(a.settings.WorkspaceRoot)
	}
	return a.paths.WorkspaceRoot()
}

func (a *app) workers() int {
	if a.settings == nil {
		return 1
	}
	return a.settings.ChecksumWorkers
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{fs: filesystem.NewOS()}

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "realmctl",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "COMMANDS:"},
		&cobra.Group{ID: "workspace", Title: "BASES AND WORKSPACES:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLaunchCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newInitBaseCmd(a))
	rootCmd.AddCommand(newVerifyCmd(a))
	rootCmd.AddCommand(newCreateCmd(a))
	rootCmd.AddCommand(newFixCmd(a))
	rootCmd.AddCommand(newCleanCmd(a))
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topics are embedded, so a failure here is a packaging bug
	if _, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
		GroupID:    "misc",
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize help topics")
	}

	return rootCmd
}

// gameNamesCompletion completes the first argument with the games in
// config.toml. Completion runs before PersistentPreRunE, so paths are
// resolved here.
func gameNamesCompletion(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		p, err := paths.New(a.configFile)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		file, err := config.Load(p.ConfigFile())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return file.Names(), cobra.ShellCompDirectiveNoFileComp
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "realmctl version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
