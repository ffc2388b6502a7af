package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hydrex"
)

var (
	searchFrom int
	searchSize int
	searchRaw  bool
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search <index> [query...]",
	Short: "Search an index and print hydrated hits in engine order",
	Long: `Search an index and print hydrated hits in engine order.

The query is passed to the engine untouched. An empty query matches everything.
With --raw, hits carry their source maps instead of hydrated models.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchFrom, "from", 0, "offset of the first hit")
	searchCmd.Flags().IntVarP(&searchSize, "size", "n", 0, "maximum number of hits (default: search.default_page_size)")
	searchCmd.Flags().BoolVar(&searchRaw, "raw", false, "skip hydration and print source maps")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

type searchHit struct {
	ID        string              `json:"id"`
	Index     string              `json:"index"`
	Score     float64             `json:"score"`
	Highlight map[string][]string `json:"highlight,omitempty"`
	Model     any                 `json:"model"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	size := searchSize
	if size <= 0 {
		size = cfg.Search.DefaultPageSize
	}
	if searchFrom < 0 {
		return fmt.Errorf("--from must not be negative, got %d", searchFrom)
	}
	if cfg.Search.MaxPageSize > 0 && size > cfg.Search.MaxPageSize {
		return fmt.Errorf("--size must not exceed %d, got %d", cfg.Search.MaxPageSize, size)
	}

	client, err := newClient(cfg, nil)
	if err != nil {
		return fmt.Errorf("connect engine: %w", err)
	}
	defer client.Close()

	var builders []hydrex.ResultSetBuilder
	if searchRaw {
		builders = append(builders, hydrex.RawBuilder{})
	}

	query := strings.Join(args[1:], " ")
	results, err := client.Index(args[0]).
		CreateSearch(query, hydrex.SearchOptions{From: searchFrom, Size: size}, builders...).
		Do(cmd.Context())
	if err != nil {
		return err
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{
			ID:        r.Hit.Document.ID,
			Index:     r.Hit.Document.Index,
			Score:     r.Hit.Score,
			Highlight: r.Hit.Highlight,
			Model:     r.Model,
		})
	}

	if searchJSON {
		return printJSON(cmd, hits)
	}
	return outputSearchTable(cmd, hits)
}

func outputSearchTable(cmd *cobra.Command, hits []searchHit) error {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, h := range hits {
		cmd.Printf("  [%d] %s/%s (%.2f)\n", searchFrom+i+1, h.Index, h.ID, h.Score)
		for field, fragments := range h.Highlight {
			if len(fragments) > 0 {
				cmd.Printf("      %s: %s\n", field, fragments[0])
			}
		}
	}
	return nil
}
