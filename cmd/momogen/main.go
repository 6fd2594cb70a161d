// momogen - synthetic MoMo/bank fraud corpus generator.
//
// Generates a labeled pair of transaction tables (MoMo + bank) whose fraud
// signatures are anchored to each synthetic customer's personal behavioral
// baseline rather than a fixed currency threshold.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moneyguard/momogen/internal/api"
	"github.com/moneyguard/momogen/internal/corpus"
	"github.com/moneyguard/momogen/internal/domain"
	"github.com/moneyguard/momogen/internal/sink"
	"github.com/moneyguard/momogen/internal/verify"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cfg := domain.DefaultConfig()

	seed := flag.Int64("seed", cfg.Seed, "Random seed (same seed + config reproduces the corpus byte for byte)")
	customers := flag.Int("customers", cfg.Customers, "Synthetic customer population size")
	legitMomo := flag.Int("momo", cfg.LegitMomo, "Legitimate MoMo transaction count")
	legitBank := flag.Int("bank", cfg.LegitBank, "Legitimate bank transaction count")
	attacks := flag.Int("attacks", cfg.Attacks, "Total attack instances, split across the four patterns")
	windowDays := flag.Int("window-days", cfg.WindowDays, "Trailing window for legitimate traffic, in days")
	attackDays := flag.Int("attack-window-days", cfg.AttackWindowDays, "Trailing window for attack traffic, in days")
	outDir := flag.String("out", "data/synthetic", "Output directory for the CSV tables")
	sqlitePath := flag.String("sqlite", "", "Also load the corpus into this SQLite file")
	pgDSN := flag.String("pg", "", "Also load the corpus into PostgreSQL (lib/pq DSN)")
	serveAddr := flag.String("serve", "", "Serve the corpus preview API on this address (requires -sqlite)")
	flag.Parse()

	// Initialize structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("MOMOGEN_DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting momogen",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	cfg.Seed = *seed
	cfg.Customers = *customers
	cfg.LegitMomo = *legitMomo
	cfg.LegitBank = *legitBank
	cfg.Attacks = *attacks
	cfg.WindowDays = *windowDays
	cfg.AttackWindowDays = *attackDays

	if *serveAddr != "" && *sqlitePath == "" {
		slog.Error("-serve requires -sqlite")
		os.Exit(1)
	}

	c, err := corpus.Build(cfg)
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	// Verify every record-level invariant before anything is written.
	v, err := verify.New()
	if err != nil {
		slog.Error("failed to build verifier", "error", err)
		os.Exit(1)
	}
	if err := v.CheckAll(c.Momo, c.Bank); err != nil {
		slog.Error("corpus verification failed", "error", err)
		os.Exit(1)
	}
	slog.Info("corpus verified")

	ctx := context.Background()

	csvSink := sink.NewCSVSink(*outDir)
	if err := csvSink.Write(ctx, c.Momo, c.Bank); err != nil {
		slog.Error("failed to write csv tables", "error", err)
		os.Exit(1)
	}
	slog.Info("csv tables written", "dir", *outDir)

	var db *sink.SQLSink
	if *sqlitePath != "" {
		db = loadDatabase(ctx, c, sink.Config{Driver: "sqlite", SQLitePath: *sqlitePath})
		slog.Info("corpus loaded into sqlite", "path", *sqlitePath)
	}
	if *pgDSN != "" {
		pg := loadDatabase(ctx, c, sink.Config{Driver: "postgres", PostgresDSN: *pgDSN})
		pg.Close()
		slog.Info("corpus loaded into postgres")
	}

	slog.Info("generation complete",
		"momo_total", c.Summary.Momo.Total,
		"momo_legit", c.Summary.Momo.Legit,
		"momo_fraud", c.Summary.Momo.Fraud,
		"bank_total", c.Summary.Bank.Total,
		"bank_legit", c.Summary.Bank.Legit,
		"bank_fraud", c.Summary.Bank.Fraud,
	)
	// The BoG floor is a regulatory AML filing threshold, not a detection
	// limit; generation never compares an amount against it.
	slog.Info("detection framing",
		"bog_reporting_floor_ghs", domain.BoGReportingThresholdGHS,
		"anomaly_reference", "personal alert threshold (3x customer baseline)",
	)

	if *serveAddr == "" {
		if db != nil {
			db.Close()
		}
		return
	}

	server := api.NewServer(*serveAddr, db.DB(), Version)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		db.Close()
	}()

	slog.Info("preview api listening", "addr", *serveAddr)
	if err := server.Start(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loadDatabase(ctx context.Context, c *corpus.Corpus, cfg sink.Config) *sink.SQLSink {
	s, err := sink.New(cfg)
	if err != nil {
		slog.Error("failed to open database sink", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}
	if err := s.Write(ctx, c.Momo, c.Bank); err != nil {
		s.Close()
		slog.Error("failed to load corpus", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}
	return s.(*sink.SQLSink)
}
