// Command realmctl-completions writes shell completion scripts for packaging.
//
//	realmctl-completions bash           print one script to stdout
//	realmctl-completions -o dist/comp   write every script into a directory
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/realmctl/cmd/realmctl"
)

type generator struct {
	file string
	gen  func(root *cobra.Command, w io.Writer) error
}

var generators = map[string]generator{
	"bash": {"realmctl.bash", func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletionV2(w, true)
	}},
	"zsh": {"_realmctl", func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	}},
	"fish": {"realmctl.fish", func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	}},
	"powershell": {"realmctl.ps1", func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	}},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell> | -o <dir>\n", os.Args[0])
		os.Exit(1)
	}

	root := realmctl.NewRootCmd()

	if os.Args[1] == "-o" {
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "-o requires a directory")
			os.Exit(1)
		}
		if err := writeAll(root, os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completions: %v\n", err)
			os.Exit(1)
		}
		return
	}

	shell := os.Args[1]
	g, ok := generators[shell]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\n", shell)
		fmt.Fprintf(os.Stderr, "Supported shells: bash, zsh, fish, powershell\n")
		os.Exit(1)
	}
	if err := g.gen(root, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		os.Exit(1)
	}
}

func writeAll(root *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for shell, g := range generators {
		f, err := os.Create(filepath.Join(dir, g.file))
		if err != nil {
			return err
		}
		if err := g.gen(root, f); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: %w", shell, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
