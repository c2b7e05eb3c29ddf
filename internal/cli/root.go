package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bankrag/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "bankrag",
	Short: "Retrieval-augmented context engine for the banking assistant",
	Long: `bankrag builds an in-process semantic index over plain-text knowledge
documents and serves similarity-ranked context for assistant queries.

Example usage:
  bankrag ingest ./data                # Load documents into the store
  bankrag index                        # Build the index and report stats
  bankrag query -q "auto loan rates"   # Retrieve grounding context`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bankrag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}
