package sink

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// openPostgres opens a PostgreSQL-backed sink.
func openPostgres(cfg Config) (*SQLSink, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres sink requires a connection string")
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	return &SQLSink{db: db, driver: "postgres"}, nil
}
