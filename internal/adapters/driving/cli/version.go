package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the askdoc version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("askdoc %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
