package realmctl

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/realmctl/pkg/ui/styles"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// formatBold returns the string in bold when stdout is a terminal
func formatBold(s string) string {
	if !isTerminal() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase, bold on terminals
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to cobra templates
// and turns off pterm styling when output is redirected.
func initTemplateFormatting() {
	if !isTerminal() || os.Getenv("NO_COLOR") != "" {
		pterm.DisableStyling()
	}

	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// printStyled prints text in the named style. The trailing newline is kept
// outside the styled block so padding never lands on an empty line.
func printStyled(w io.Writer, style, text string) {
	_, _ = fmt.Fprintln(w, styles.Render(style, strings.TrimRight(text, "\n")))
}
