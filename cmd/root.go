package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teamdeck/attention-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "attention-engine",
	Short: "Per-user attention feed service",
	Long:  "Computes prioritized attention feeds from domain sources: tasks, projects, deliverables, trades, list suggestions, notifications, and team activity.",
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
