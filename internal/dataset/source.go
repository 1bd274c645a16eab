package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pable/go-ipl-stats/internal/config"
	"github.com/pable/go-ipl-stats/internal/model"
	"github.com/pable/go-ipl-stats/internal/parser"
	"github.com/pable/go-ipl-stats/internal/storage"
)

// ErrUnknownSource is returned for a data.source other than csv or sqlite.
var ErrUnknownSource = errors.New("unknown data source")

// Load reads both tables from the configured source and builds the dataset.
func Load(ctx context.Context, cfg config.DataConfig) (*Dataset, error) {
	start := time.Now()

	var (
		matches    []model.Match
		deliveries []model.Delivery
		err        error
	)
	switch cfg.Source {
	case config.SourceCSV:
		matches, deliveries, err = parser.LoadFiles(ctx, cfg.Matches, cfg.Deliveries)
	case config.SourceSQLite:
		matches, deliveries, err = loadSQLite(cfg.DB)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", cfg.Source, err)
	}

	ds := Build(matches, deliveries)
	st := ds.Stats()
	slog.Info("dataset loaded",
		"source", cfg.Source,
		"matches", st.Matches,
		"deliveries", st.Deliveries,
		"regulation", st.Regulation,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	if st.OrphanDeliveries > 0 {
		slog.Warn("deliveries without a match row dropped", "count", st.OrphanDeliveries)
	}
	if st.UnknownBattingTeam > 0 {
		slog.Warn("deliveries with an unrecognised batting team", "count", st.UnknownBattingTeam)
	}
	return ds, nil
}

func loadSQLite(path string) ([]model.Match, []model.Delivery, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	matches, err := db.LoadMatches()
	if err != nil {
		return nil, nil, fmt.Errorf("load matches: %w", err)
	}
	deliveries, err := db.LoadDeliveries()
	if err != nil {
		return nil, nil, fmt.Errorf("load deliveries: %w", err)
	}
	return matches, deliveries, nil
}
