package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/navbind"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of navbind",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "navbind version %s\n", strings.TrimSpace(navbind.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
