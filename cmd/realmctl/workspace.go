package realmctl

import (
	"fmt"

	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/paths"
	"github.com/arthur-debert/realmctl/pkg/ui/styles"
	"github.com/arthur-debert/realmctl/pkg/workspace"
	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		basePath      string
		shares        []string
		workspaceRoot string
	)

	cmd := &cobra.Command{
		Use:     "create <name>",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			name := args[0]

			rules, err := workspace.ParseShareArgs(workspace.DefaultSharingRules(), shares)
			if err != nil {
				return err
			}
			baseDir, err := paths.Normalize(basePath)
			if err != nil {
				return err
			}
			if workspaceRoot == "" {
				workspaceRoot = a.workspaceRoot()
			}
			root, err := paths.Normalize(workspaceRoot)
			if err != nil {
				return err
			}

			if a.dryRun {
				printStyled(out, "DryRunBanner", MsgDryRunBanner)
			}
			_, _ = fmt.Fprintf(out, MsgCreatingWorkspace, name)
			_, _ = fmt.Fprintf(out, MsgBaseLine, baseDir)
			_, _ = fmt.Fprintln(out)
			printStyled(out, "SubHeader", MsgSharingRules)
			for _, key := range rules.Keys() {
				_, _ = fmt.Fprintf(out, MsgRuleItem, key, styles.Render("Strategy", string(rules[key])))
			}

			if a.dryRun {
				wsPath, err := workspace.PlanCreate(a.fs, name, baseDir, root)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprintf(out, MsgWorkspaceWouldBe, wsPath)
				return nil
			}

			cfg, err := workspace.Create(cmd.Context(), a.fs, name, baseDir, root, rules)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out)
			printStyled(out, "Success", fmt.Sprintf(MsgWorkspaceCreated, cfg.WorkspacePath))
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, MsgConfigSnippet)

			snippet, err := toml.Marshal(map[string]map[string]string{
				name: {"directory": cfg.WorkspacePath},
			})
			if err != nil {
				return fmt.Errorf("failed to render config snippet: %w", err)
			}
			_, _ = fmt.Fprint(out, string(snippet))
			_, _ = fmt.Fprintln(out, "# ... other settings ...")
			return nil
		},
	}

	cmd.Flags().StringVar(&basePath, "base", "", MsgFlagBase)
	cmd.Flags().StringArrayVar(&shares, "share", nil, MsgFlagShare)
	cmd.Flags().StringVar(&workspaceRoot, "workspace-root", "", MsgFlagWorkspaceRoot)
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagDirname("base")
	_ = cmd.MarkFlagDirname("workspace-root")

	return cmd
}

func newFixCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "fix <game>",
		Short:             MsgFixShort,
		Long:              MsgFixLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "workspace",
		ValidArgsFunction: gameNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if a.dryRun {
				printStyled(out, "DryRunBanner", MsgDryRunBanner)
			}
			_, _ = fmt.Fprintf(out, MsgFixingWorkspace, args[0])
			game, err := a.game(args[0])
			if err != nil {
				return err
			}

			fix, format := workspace.Fix, MsgFixAction
			if a.dryRun {
				fix, format = workspace.PlanFix, MsgFixWouldAction
			}
			report, err := fix(cmd.Context(), a.fs, game.Directory, func(action workspace.FixAction) {
				line := fmt.Sprintf(format, action.Message, action.Path)
				if action.Kind == workspace.FixWarning {
					printStyled(out, "Warning", line)
					return
				}
				_, _ = fmt.Fprint(out, line)
			})
			if err != nil {
				return err
			}

			if len(report.Actions) == 0 {
				_, _ = fmt.Fprintln(out, MsgFixNothing)
			}
			if !a.dryRun {
				printStyled(out, "Success", MsgFixDone)
			}
			return nil
		},
	}
}

func newCleanCmd(a *app) *cobra.Command {
	var wdb bool

	cmd := &cobra.Command{
		Use:               "clean <game>",
		Short:             MsgCleanShort,
		Long:              MsgCleanLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "workspace",
		ValidArgsFunction: gameNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if a.dryRun {
				printStyled(out, "DryRunBanner", MsgDryRunBanner)
			}
			_, _ = fmt.Fprintf(out, MsgCleaningWorkspace, args[0])
			game, err := a.game(args[0])
			if err != nil {
				return err
			}

			report, err := workspace.Clean(a.fs, game.Directory, workspace.CleanOptions{WDB: wdb, DryRun: a.dryRun})
			if err != nil {
				return err
			}

			for _, item := range report.Removed {
				if a.dryRun {
					_, _ = fmt.Fprintf(out, MsgWouldRemoveItem, item)
					continue
				}
				printStyled(out, "Success", fmt.Sprintf(MsgRemovedItem, item))
			}
			for _, failure := range report.Failures {
				printStyled(cmd.ErrOrStderr(), "Error", fmt.Sprintf(MsgFailedItem, failure.Path, failure.Err))
			}
			if report.Empty() {
				_, _ = fmt.Fprintln(out, MsgAlreadyClean)
			}
			if len(report.Failures) > 0 {
				return errors.Newf(errors.ErrFileAccess, MsgErrCleanFailures, len(report.Failures))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&wdb, "wdb", false, MsgFlagWDB)

	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "status <game>",
		Short:             MsgStatusShort,
		Long:              MsgStatusLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: gameNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			game, err := a.game(args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, styles.Render("Header", args[0]))

			cfg, err := workspace.LoadConfig(a.fs, game.Directory)
			switch {
			case errors.IsErrorCode(err, errors.ErrWorkspaceInvalid):
				_, _ = fmt.Fprintf(out, MsgNotAWorkspace, game.Directory)
			case err != nil:
				return err
			default:
				info := pterm.TableData{
					{"Workspace", cfg.Name},
					{"ID", cfg.ID},
					{"Path", cfg.WorkspacePath},
					{"Base", cfg.BasePath},
					{"Profile", cfg.BaseName},
					{"Created", cfg.CreatedAt},
				}
				if err := pterm.DefaultTable.WithData(info).WithWriter(out).Render(); err != nil {
					return err
				}

				_, _ = fmt.Fprintln(out)
				printStyled(out, "SubHeader", MsgSharingRules)
				for _, key := range cfg.SharingRules.Keys() {
					_, _ = fmt.Fprintf(out, MsgRuleItem, key, styles.Render("Strategy", string(cfg.SharingRules[key])))
				}
				_, _ = fmt.Fprintln(out)
			}

			usage, err := workspace.Usage(game.Directory)
			if err != nil {
				return err
			}

			data := pterm.TableData{
				{"Files", humanize.Comma(int64(usage.Files))},
				{"Directories", humanize.Comma(int64(usage.Dirs))},
				{"Symlinks", humanize.Comma(int64(usage.Symlinks))},
				{"Hard linked", humanize.Comma(int64(usage.HardLinked))},
				{"Apparent size", humanize.IBytes(uint64(usage.ApparentBytes))},
				{"Unique size", humanize.IBytes(uint64(usage.UniqueBytes))},
				{"Owned size", humanize.IBytes(uint64(usage.OwnedBytes))},
				{"Shared with base", humanize.IBytes(uint64(usage.SharedBytes()))},
			}
			if usage.DiskBytes > 0 {
				data = append(data, []string{"On disk", humanize.IBytes(uint64(usage.DiskBytes))})
			}
			return pterm.DefaultTable.WithData(data).WithWriter(out).Render()
		},
	}
}
