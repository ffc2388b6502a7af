package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <index> <id>",
	Short: "Fetch a document and print its hydrated model",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	client, err := newClient(cfg, nil)
	if err != nil {
		return fmt.Errorf("connect engine: %w", err)
	}
	defer client.Close()

	model, err := client.Index(args[0]).GetModel(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	return printJSON(cmd, model)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
