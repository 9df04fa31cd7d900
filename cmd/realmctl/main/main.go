package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/realmctl/cmd/realmctl"
	"github.com/arthur-debert/realmctl/pkg/ui/styles"
)

func main() {
	rootCmd := realmctl.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
