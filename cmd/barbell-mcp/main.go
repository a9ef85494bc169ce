package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/barbell/internal/config"
	barbellmcp "github.com/meltforce/barbell/internal/mcp"
	"github.com/meltforce/barbell/internal/notes"
	"github.com/meltforce/barbell/internal/program"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode; optional)")
	remote := flag.String("remote", "", "barbell server URL (e.g. https://barbell.tail1234.ts.net); plans are generated there")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("barbell-mcp", Version)
		return
	}

	// stdout carries the protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var planner barbellmcp.Planner
	if *remote != "" {
		planner = barbellmcp.NewHTTPClient(*remote)
		log.Info("remote mode", "server", *remote)
	} else {
		svc, closeFn, err := localPlanner(*configPath, log)
		if err != nil {
			log.Error("failed to start local planner", "error", err)
			os.Exit(1)
		}
		defer closeFn()
		planner = svc
		log.Info("local mode")
	}

	s := barbellmcp.New(planner, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

// localPlanner builds a program service from config. Without a config file
// it serves the built-in presets with no training notes.
func localPlanner(configPath string, log *slog.Logger) (*program.Service, func(), error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, nil, err
		}
	}

	catalog, err := program.LoadCatalog(cfg.Programs.Dir)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {}
	var store notes.Store
	if configPath != "" {
		store, err = notes.Open(context.Background(), cfg.Notes.Driver, cfg.Notes.DSN())
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() { _ = store.Close() }
	}

	svc := program.NewService(catalog, store, program.Defaults{
		Preset:           cfg.Defaults.Preset,
		BarbellWeight:    cfg.Defaults.BarbellWeight,
		TrainingMaxScale: cfg.Defaults.TrainingMaxScale,
	}, log)
	return svc, closeFn, nil
}
