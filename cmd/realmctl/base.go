package realmctl

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/realmctl/pkg/base"
	"github.com/arthur-debert/realmctl/pkg/errors"
	"github.com/arthur-debert/realmctl/pkg/paths"
	"github.com/arthur-debert/realmctl/pkg/ui/styles"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newInitBaseCmd(a *app) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:     "init-base <path>",
		Short:   MsgInitBaseShort,
		Long:    MsgInitBaseLong,
		Example: MsgInitBaseExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			profile, err := base.LookupProfile(profileName)
			if err != nil {
				return err
			}
			dir, err := paths.Normalize(args[0])
			if err != nil {
				return err
			}

			if a.dryRun {
				printStyled(out, "DryRunBanner", MsgDryRunBanner)
			}
			_, _ = fmt.Fprintf(out, MsgInitializingBase, dir)
			_, _ = fmt.Fprintf(out, MsgUsingProfile, profile.Name)

			initBase := base.Init
			if a.dryRun {
				initBase = base.Preview
			}
			result, err := initBase(cmd.Context(), a.fs, dir, profile, a.workers())
			if err != nil {
				return err
			}

			printStyled(out, "Success", MsgRequirementsOK)
			if len(result.Warnings) > 0 {
				printStyled(out, "Warning", MsgWarningsHeader)
				for _, w := range result.Warnings {
					_, _ = fmt.Fprintf(out, MsgWarningItem, w)
				}
			}

			_, _ = fmt.Fprintf(out, MsgFoundEntries, result.Entries)
			_, _ = fmt.Fprintf(out, MsgComputedSums, result.Checksums)
			counts := result.Manifest.CountByRole()
			for _, role := range base.AllRoles {
				if n := counts[role]; n > 0 {
					_, _ = fmt.Fprintf(out, "  %-12s %d\n", role, n)
				}
			}
			if a.dryRun {
				_, _ = fmt.Fprintf(out, MsgManifestWouldBe, styles.Render("FilePath", result.ManifestPath))
				return nil
			}
			_, _ = fmt.Fprintf(out, MsgManifestWritten, styles.Render("FilePath", result.ManifestPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", base.DefaultProfile, MsgFlagProfile)
	_ = cmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, p := range base.Profiles() {
			names = append(names, p.Name)
			names = append(names, p.Aliases...)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "verify <path>",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			dir, err := paths.Normalize(args[0])
			if err != nil {
				return err
			}

			report, err := base.VerifyChecksums(cmd.Context(), a.fs, dir, a.workers())
			if err != nil {
				return err
			}

			for _, p := range report.Problems {
				if p.Missing {
					printStyled(out, "Error", fmt.Sprintf(MsgVerifyMissing, p.Path))
				} else {
					printStyled(out, "Error", fmt.Sprintf(MsgVerifyChanged, p.Path, p.Expected, p.Actual))
				}
			}
			if !report.OK() {
				return errors.Newf(errors.ErrChecksumMismatch, MsgErrVerifyFailed, len(report.Problems), report.Checked)
			}

			printStyled(out, "Success", fmt.Sprintf(MsgVerifyOK, report.Checked))
			return nil
		},
	}
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		Args:    cobra.NoArgs,
		GroupID: "workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"PROFILE", "VERSION", "ALIASES"}}
			for _, p := range base.Profiles() {
				data = append(data, []string{p.Name, p.Version, strings.Join(p.Aliases, ", ")})
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithData(data).
				WithWriter(cmd.OutOrStdout()).
				Render()
		},
	}
}
