package realmctl

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/realmctl/pkg/launcher"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// startProcess replaces the detached process start in tests
var startProcess func(launcher.Command) (int, error)

func newLaunchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "launch <game>",
		Short:             MsgLaunchShort,
		Long:              MsgLaunchLong,
		Example:           MsgLaunchExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: gameNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			name := args[0]

			_, _ = fmt.Fprintf(out, MsgLoadingConfig, name)
			game, err := a.game(name)
			if err != nil {
				return err
			}
			if err := game.Validate(); err != nil {
				return err
			}

			if a.dryRun {
				printStyled(out, "DryRunBanner", MsgDryRunBanner)
			}

			if game.HasRealmlist() {
				line := launcher.RealmlistLine(game.Realmlist)
				if a.dryRun {
					_, _ = fmt.Fprintf(out, MsgRealmlistWouldBe, line)
				} else {
					if _, err := launcher.WriteRealmlist(a.fs, game.Directory, game.RealmlistRelPath, game.Realmlist); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, MsgRealmlistSet, line)
				}
			}

			opts := launcher.DefaultOptions()
			opts.Setsid = a.settings.Setsid
			opts.Clipboard = a.settings.Clipboard
			opts.DryRun = a.dryRun
			opts.Out = out
			opts.Start = startProcess

			result, err := launcher.Launch(cmd.Context(), a.fs, game, opts)
			if err != nil {
				return err
			}
			if result.CacheCleared {
				_, _ = fmt.Fprintf(out, MsgCacheCleared, filepath.Join(game.Directory, launcher.CacheDirName))
			}
			if result.Credentials.Copied {
				printStyled(out, "Muted", MsgPasswordCopied)
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.games()
			if err != nil {
				return err
			}

			names := file.Names()
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), MsgNoGames)
				return nil
			}

			data := pterm.TableData{{"GAME", "DIRECTORY", "REALMLIST"}}
			for _, name := range names {
				game := file[name]
				data = append(data, []string{name, game.Directory, game.Realmlist})
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithData(data).
				WithWriter(cmd.OutOrStdout()).
				Render()
		},
	}
}
