package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bankrag/internal/adapter/docstore"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Load plain-text documents into the document store",
	Long: `Load .txt documents from a directory into the BoltDB document store so
the engine can run with documents.store set to "bolt".

Examples:
  bankrag ingest              # Ingest from the configured data dir
  bankrag ingest ./documents  # Ingest from a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := cfg.Documents.Dir
	if len(args) > 0 {
		var err error
		dir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	src := docstore.NewFSStore(dir, cfg.Documents.Patterns)
	sources, err := src.Sources(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents in %s: %w", dir, err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no documents matched in %s", dir)
	}

	dst, err := docstore.NewBoltStore(cfg.Documents.DBPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	for _, source := range sources {
		text, err := src.Load(cmd.Context(), source)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", source, err)
		}
		if err := dst.Put(cmd.Context(), source, text); err != nil {
			return fmt.Errorf("failed to store %s: %w", source, err)
		}
		fmt.Printf("  ingested %s (%d bytes)\n", source, len(text))
	}

	fmt.Printf("\nIngested %d documents into %s\n", len(sources), cfg.Documents.DBPath)
	return nil
}
