package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/meltforce/barbell/internal/config"
	"github.com/meltforce/barbell/internal/notes"
	"github.com/meltforce/barbell/internal/program"
	"github.com/meltforce/barbell/internal/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run notes migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("barbell starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Open runs the embedded migrations before returning.
	ctx := context.Background()
	store, err := notes.Open(ctx, cfg.Notes.Driver, cfg.Notes.DSN())
	if err != nil {
		log.Error("failed to open notes store", "driver", cfg.Notes.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("notes store ready", "driver", cfg.Notes.Driver)

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	catalog, err := program.LoadCatalog(cfg.Programs.Dir)
	if err != nil {
		log.Error("failed to load programs", "dir", cfg.Programs.Dir, "error", err)
		os.Exit(1)
	}
	log.Info("programs loaded", "presets", catalog.Keys())

	programs := program.NewService(catalog, store, program.Defaults{
		Preset:           cfg.Defaults.Preset,
		BarbellWeight:    cfg.Defaults.BarbellWeight,
		TrainingMaxScale: cfg.Defaults.TrainingMaxScale,
	}, log)
	if _, err := catalog.Get(cfg.Defaults.Preset); err != nil {
		log.Error("default preset not found", "error", err)
		os.Exit(1)
	}

	srv := server.New(programs, store, log)

	// Serve on the tailnet when enabled, otherwise on a plain TCP port.
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
