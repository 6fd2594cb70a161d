// Package sink serializes an assembled corpus: delimited text files for the
// model-training pipeline, or a sqlite/postgres load for ad hoc querying and
// the preview API.
package sink

import (
	"context"
	"fmt"

	"github.com/moneyguard/momogen/internal/domain"
)

// TimeLayout is the fixed-width, lexicographically sortable timestamp form
// used in every output table.
const TimeLayout = "2006-01-02 15:04:05"

// Sink writes both output tables, already in chronological order.
type Sink interface {
	Write(ctx context.Context, momo []*domain.MomoTransaction, bank []*domain.BankTransaction) error
	Close() error
}

// Config selects and parameterizes a sink driver.
type Config struct {
	Driver string // "csv", "sqlite" or "postgres"

	// Dir is the output directory for the csv driver.
	Dir string

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string

	// PostgresDSN is the lib/pq connection string for the postgres driver.
	PostgresDSN string
}

// New creates a sink based on configuration.
func New(cfg Config) (Sink, error) {
	switch cfg.Driver {
	case "csv":
		return NewCSVSink(cfg.Dir), nil
	case "sqlite":
		return openSQLite(cfg)
	case "postgres":
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported sink driver: %s", cfg.Driver)
	}
}
