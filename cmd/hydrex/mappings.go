package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hydrex"
)

var mappingsJSON bool

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "List configured index to domain key mappings",
	Args:  cobra.NoArgs,
	RunE:  runMappings,
}

func init() {
	mappingsCmd.Flags().BoolVar(&mappingsJSON, "json", false, "output mappings as JSON")
	rootCmd.AddCommand(mappingsCmd)
}

type mappingRow struct {
	Index     string `json:"index"`
	DomainKey string `json:"domain_key"`
}

func runMappings(cmd *cobra.Command, _ []string) error {
	entries := registryFromConfig().Entries()

	if mappingsJSON {
		rows := make([]mappingRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, mappingRow{Index: e.Index, DomainKey: e.DomainKey})
		}
		return printJSON(cmd, rows)
	}

	for _, e := range entries {
		cmd.Printf("%s\t%s\n", e.Index, e.DomainKey)
	}
	return nil
}

func registryFromConfig() *hydrex.Registry {
	return hydrex.NewRegistry(cfg.Mappings...)
}
