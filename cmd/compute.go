package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teamdeck/attention-engine/internal/attention"
	"github.com/teamdeck/attention-engine/internal/model"
)

var (
	computeUser        string
	computeWindowHours int
	computeFixtures    string
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute one user's feed and print it as JSON",
	Long:  "Runs a single feed computation against the configured store. With --fixtures, items come from a YAML file instead of the SQL collectors, which makes scoring changes easy to inspect offline.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		engine := env.Engine
		if computeFixtures != "" {
			items, err := loadFixtures(computeFixtures)
			if err != nil {
				return err
			}
			engine = attention.NewEngine(
				[]attention.Collector{&attention.Static{SourceName: "fixtures", Items: items}},
				env.Store, env.Scoring, cfg.Collectors,
			)
		}

		feed, err := engine.Compute(ctx, computeUser, computeWindowHours)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(feed), "encode feed")
	},
}

func loadFixtures(path string) ([]model.AttentionItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read fixtures %s", path)
	}
	var doc struct {
		Items []model.AttentionItem `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "parse fixtures %s", path)
	}
	return doc.Items, nil
}

func init() {
	computeCmd.Flags().StringVar(&computeUser, "user", "", "user to compute the feed for")
	computeCmd.Flags().IntVar(&computeWindowHours, "window-hours", 0, "lookback window (default from engine)")
	computeCmd.Flags().StringVar(&computeFixtures, "fixtures", "", "YAML file of items to use instead of SQL collectors")
	computeCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(computeCmd)
}
