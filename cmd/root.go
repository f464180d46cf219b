package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marispinelli3322/tutor-copilot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tutor-copilot",
	Short: "Analytics copilot for hospital simulation tutors",
	Long:  "Derives per-period reports (efficiency, profitability, benchmarking, risk, governance, strategy, pricing, quality, lost revenue) from the simulation database and generates AI facilitation guides for class discussion.",
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
