package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queryText   string
	queryTopK   int
	queryForce  bool
	queryScores bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Retrieve grounding context for a query",
	Long: `Retrieve the most relevant knowledge-base chunks for a query and print
them as the context block the assistant would receive.

Examples:
  bankrag query -q "What's the APR on an auto loan?"
  bankrag query -q "SIP risks" -k 3 --scores`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "query text (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	queryCmd.Flags().BoolVar(&queryForce, "force", false, "retrieve even if the topic gate rejects the query")
	queryCmd.Flags().BoolVar(&queryScores, "scores", false, "show per-chunk similarity scores")
	queryCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	logger := newLogger(cfg)

	engine, closeStore, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if !queryForce && !engine.ShouldRetrieve(queryText) {
		fmt.Println("Query is off-topic for the knowledge base; skipping retrieval (use --force to override).")
		return nil
	}

	if queryScores {
		scored := engine.RetrieveScored(cmd.Context(), queryText, queryTopK)
		if len(scored) == 0 {
			fmt.Println("No relevant context found.")
			return nil
		}
		for i, sc := range scored {
			fmt.Printf("%d. score=%.4f  %s - %s\n", i+1, sc.Score, sc.Chunk.Metadata.Source, sc.Chunk.Metadata.Section)
		}
		return nil
	}

	context := engine.Retrieve(cmd.Context(), queryText, queryTopK)
	if context == "" {
		fmt.Println("No relevant context found.")
		return nil
	}

	fmt.Println(context)
	return nil
}
