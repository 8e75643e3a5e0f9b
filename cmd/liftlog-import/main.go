package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/state"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("file", "", "path to workout history CSV (required)")
	modeStr := flag.String("mode", "merge", "import mode: merge or replace")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to storage")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -file history.csv [-mode merge|replace] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	mode, err := importer.ParseMode(*modeStr)
	if err != nil {
		log.Error("invalid mode", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("failed to open CSV file", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to storage")
	}

	blob, err := openBlobStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer blob.Close()

	store, err := state.Open(ctx, blob, log)
	if err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	// Run import
	imp := importer.New(store, log, *dryRun)
	stats, err := imp.ImportCSV(ctx, f, mode)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import stats",
		"mode", stats.Mode,
		"sets_imported", stats.SetsImported,
		"rep_groups", stats.RepGroups,
		"sets_before", stats.SetsBefore,
		"sets_after", stats.SetsAfter,
		"dry_run", stats.DryRun,
	)
	log.Info("import complete")
}

func openBlobStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		dsn := cfg.Storage.Postgres.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")
		return storage.OpenPostgres(ctx, dsn)
	default:
		return storage.OpenSQLite(cfg.Storage.DataDir)
	}
}
