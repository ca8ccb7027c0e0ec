package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kan-Singh/Pack-VC-Technical-Exercise/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "founder-finder",
	Short: "Find company founders from their public web pages",
	Long: "Reads a list of companies, fetches each company's home page and a fixed set of " +
		"about/team/founders pages, and extracts founder names with structured data and text patterns.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
