package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hydrex/internal/version"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipRuntime: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("hydrex version %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
