package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"bankrag/internal/metrics"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge index and report statistics",
	Long: `Build the full knowledge index: load the configured documents, chunk
them, and compute embeddings for every chunk.

The index lives in memory and is rebuilt on every process start; this
command is a dry run that reports what the engine will hold.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	logger := newLogger(cfg)
	m := metrics.New(prometheus.NewRegistry())

	builder, embedder, closeStore, err := newBuilder(cfg, logger, m)
	if err != nil {
		return err
	}
	defer closeStore()

	var bar *progressbar.ProgressBar
	builder.SetProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Embedding chunks"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	})

	chunks, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	scorable := 0
	for _, c := range chunks {
		if c.Scorable() {
			scorable++
		}
	}

	fmt.Printf("\nIndex build complete:\n")
	fmt.Printf("  Chunks:     %d\n", len(chunks))
	fmt.Printf("  Scorable:   %d\n", scorable)
	fmt.Printf("  Model:      %s\n", embedder.ModelName())
	fmt.Printf("  Dimension:  %d\n", embedder.Dimension())

	if scorable < len(chunks) {
		fmt.Printf("\nWarning: %d chunks have no embedding and will rank with score 0.\n", len(chunks)-scorable)
	}

	return nil
}
