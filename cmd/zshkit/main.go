package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/zshkit/internal/cli"
	"github.com/arthur-debert/zshkit/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
