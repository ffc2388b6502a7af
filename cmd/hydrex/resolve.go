package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resolveIndex     string
	resolveDomainKey string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an index to its domain key or a domain key to its index",
	Example: `  hydrex resolve --index todo
  hydrex resolve --domain-key 'App\Todo'`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveIndex, "index", "", "index name to resolve")
	resolveCmd.Flags().StringVar(&resolveDomainKey, "domain-key", "", "domain key to resolve")
	resolveCmd.MarkFlagsMutuallyExclusive("index", "domain-key")
	resolveCmd.MarkFlagsOneRequired("index", "domain-key")
	rootCmd.AddCommand(resolveCmd)
}

// runResolve reads the configured mapping table only; the engine is never contacted.
func runResolve(cmd *cobra.Command, _ []string) error {
	registry := registryFromConfig()

	if resolveIndex != "" {
		key, err := registry.ResolveDomainKey(resolveIndex)
		if err != nil {
			return err
		}
		cmd.Println(key)
		return nil
	}

	if resolveDomainKey == "" {
		return errors.New("domain key must not be empty")
	}
	index, err := registry.ResolveIndex(resolveDomainKey)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", resolveDomainKey, err)
	}
	cmd.Println(index)
	return nil
}
