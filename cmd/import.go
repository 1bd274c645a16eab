package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pable/go-ipl-stats/internal/parser"
	"github.com/pable/go-ipl-stats/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the matches and ball-by-ball CSVs into SQLite",
	Long: `Parse the matches and ball-by-ball CSV files and store them in the SQLite
database, replacing whatever was imported before. Afterwards run any command
with --source sqlite to skip CSV parsing.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, _ []string) error {
	dbPath := cfg.Data.DB
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	start := time.Now()
	fmt.Fprintf(os.Stdout, "Parsing %s and %s...\n", cfg.Data.Matches, cfg.Data.Deliveries)
	matches, deliveries, err := parser.LoadFiles(cmd.Context(), cfg.Data.Matches, cfg.Data.Deliveries)
	if err != nil {
		return err
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.ImportMatches(matches); err != nil {
		return fmt.Errorf("import matches: %w", err)
	}
	if err := db.ImportDeliveries(deliveries); err != nil {
		return fmt.Errorf("import deliveries: %w", err)
	}

	counts, err := db.Counts()
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Stored %s matches and %s deliveries in %s (%s).\n",
		humanize.Comma(int64(counts.Matches)),
		humanize.Comma(int64(counts.Deliveries)),
		dbPath,
		time.Since(start).Round(time.Millisecond),
	)
	return nil
}
