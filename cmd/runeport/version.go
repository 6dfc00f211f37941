package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/runeport"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of runeport",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "runeport version %s\n", strings.TrimSpace(runeport.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
