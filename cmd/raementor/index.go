package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raementor/raementor/internal/embedding"
	"github.com/raementor/raementor/internal/indexer"
	"github.com/raementor/raementor/internal/retriever"
)

func newIndexCmd(a *app) *cobra.Command {
	var embed bool
	var query string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Chunk the reference document and print statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := indexer.NewIndexer(a.cfg.Document)

			result, err := idx.Index()
			if err != nil {
				return err
			}
			indexer.PrintStats(cmd.OutOrStdout(), result)

			if !embed && query == "" {
				return nil
			}

			provider, err := embedding.NewProvider(a.cfg)
			if err != nil {
				if errors.Is(err, embedding.ErrNotConfigured) {
					return fmt.Errorf("embedding provider needs an API key: %w", err)
				}
				return err
			}

			store := retriever.NewMemoryStore(idx, embedding.NewEmbedder(provider), a.logger)
			if err := store.EnsureBuilt(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nEmbedded %d chunks of %s with %s (%s)\n",
				store.Count(), idx.Path(), provider.Name(), provider.Model())

			if query == "" {
				return nil
			}

			results, err := retriever.NewRanker(store).Search(cmd.Context(), query, a.cfg.Retrieval.TopK)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nTop %d chunks for %q:\n", len(results), query)
			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "\n--- #%d (score %.4f) ---\n%s\n", i+1, r.Score, r.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&embed, "embed", false, "also embed the chunks to verify the embedding provider")
	cmd.Flags().StringVarP(&query, "query", "q", "", "run a similarity search against the embedded chunks")
	return cmd
}
