package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/meltforce/barbell/internal/config"
	"github.com/meltforce/barbell/internal/notes"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	importPath := flag.String("path", "", "directory of .txt/.md training notes to import")
	dryRun := flag.Bool("dry-run", false, "report counts without writing to the store")
	list := flag.Bool("list", false, "list stored notes")
	deleteID := flag.String("delete", "", "delete the note with this id")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *importPath == "" && !*list && *deleteID == "" {
		fmt.Fprintf(os.Stderr, "Usage: barbell-notes -config config.yaml (-path <dir> [-dry-run] | -list | -delete <id>)\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := notes.Open(ctx, cfg.Notes.Driver, cfg.Notes.DSN())
	if err != nil {
		log.Error("failed to open notes store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case *importPath != "":
		info, err := os.Stat(*importPath)
		if err != nil || !info.IsDir() {
			log.Error("notes path does not exist or is not a directory", "path", *importPath)
			os.Exit(1)
		}
		if *dryRun {
			log.Info("DRY RUN mode, nothing will be written to the store")
		}
		stats, err := notes.NewImporter(store, log, *dryRun).Import(ctx, *importPath)
		if err != nil {
			log.Error("import failed", "error", err)
			printStats(log, stats)
			os.Exit(1)
		}
		printStats(log, stats)
		log.Info("import complete")

	case *deleteID != "":
		id, err := uuid.Parse(*deleteID)
		if err != nil {
			log.Error("invalid note id", "id", *deleteID, "error", err)
			os.Exit(1)
		}
		if err := store.Delete(ctx, id); err != nil {
			log.Error("delete failed", "id", id, "error", err)
			os.Exit(1)
		}
		log.Info("note deleted", "id", id)

	case *list:
		all, err := store.List(ctx)
		if err != nil {
			log.Error("list failed", "error", err)
			os.Exit(1)
		}
		for _, n := range all {
			fmt.Printf("%s  %-30s  %s\n", n.ID, n.Title, n.Source)
		}
	}
}

func printStats(log *slog.Logger, stats *notes.Stats) {
	if stats == nil {
		return
	}
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
	)
}
