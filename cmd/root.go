package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/config"
	"github.com/pable/go-ipl-stats/internal/dataset"
	"github.com/pable/go-ipl-stats/internal/logging"
)

var (
	cfgFile    string
	jsonOutput bool

	vip = config.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "iplstats",
	Short: "IPL ball-by-ball statistics engine",
	Long: `Compute team results and player batting/bowling records from the IPL
matches and ball-by-ball tables, either from the terminal or over HTTP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./iplstats.yaml if present)")
	flags.String("source", "", "data source: csv or sqlite")
	flags.String("matches", "", "path to the matches CSV")
	flags.String("deliveries", "", "path to the ball-by-ball CSV")
	flags.String("db", "", "path to the SQLite database")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.BoolVar(&jsonOutput, "json", false, "print results as JSON instead of tables")

	for key, name := range map[string]string{
		"data.source":     "source",
		"data.matches":    "matches",
		"data.deliveries": "deliveries",
		"data.db":         "db",
		"logging.level":   "log-level",
		"logging.format":  "log-format",
	} {
		if err := vip.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(h2hCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(battingCmd)
	rootCmd.AddCommand(bowlingCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(dropCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.Load(vip, cfgFile)
	if err != nil {
		return err
	}
	if err := logging.Setup(c.Logging.Level, c.Logging.Format); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	cfg = c
	return nil
}

// loadDataset builds the dataset from the configured source.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	return dataset.Load(ctx, cfg.Data)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
