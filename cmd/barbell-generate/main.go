package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/barbell/internal/config"
	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/notes"
	"github.com/meltforce/barbell/internal/program"
	"github.com/meltforce/barbell/internal/prompt"
	"github.com/meltforce/barbell/internal/render"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// maxFlags collects repeated -max Lift=value flags.
type maxFlags map[string]models.MaxInput

func (m maxFlags) String() string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+string(v))
	}
	return strings.Join(parts, ",")
}

func (m maxFlags) Set(s string) error {
	lift, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(lift) == "" {
		return fmt.Errorf("want Lift=max, got %q", s)
	}
	m[strings.TrimSpace(lift)] = models.MaxInput(strings.TrimSpace(value))
	return nil
}

type options struct {
	configPath string
	preset     string
	name       string
	maxes      maxFlags
	light      bool
	bar        float64
	cycles     int
	format     string
	out        string
	withNotes  bool
}

func main() {
	opts := options{maxes: maxFlags{}}
	flag.StringVar(&opts.configPath, "config", "", "path to config file (optional; needed for -notes)")
	flag.StringVar(&opts.preset, "preset", "", "program preset (default from config, else wendler531)")
	flag.StringVar(&opts.name, "name", "", "athlete name; prompts interactively when empty")
	flag.Var(opts.maxes, "max", "lift max as Lift=400 or Lift=5x300 (repeatable)")
	flag.BoolVar(&opts.light, "light", false, "make small training max jumps")
	flag.Float64Var(&opts.bar, "bar", 0, "barbell weight (default from config, else 45)")
	flag.IntVar(&opts.cycles, "cycles", 0, "cycles to generate (default 2)")
	flag.StringVar(&opts.format, "format", "markdown", "stdout format: markdown, html or json")
	flag.StringVar(&opts.out, "out", "", "also write the plan to this file (.html renders HTML)")
	flag.BoolVar(&opts.withNotes, "notes", false, "append stored training notes")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("barbell-generate", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := run(context.Background(), opts, os.Stdin, os.Stdout, log); err != nil {
		log.Error("generate failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer, log *slog.Logger) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	catalog, err := program.LoadCatalog(cfg.Programs.Dir)
	if err != nil {
		return err
	}

	var store notes.Store
	if opts.withNotes {
		if store, err = notes.Open(ctx, cfg.Notes.Driver, cfg.Notes.DSN()); err != nil {
			return err
		}
		defer store.Close()
	}

	svc := program.NewService(catalog, store, program.Defaults{
		Preset:           cfg.Defaults.Preset,
		BarbellWeight:    cfg.Defaults.BarbellWeight,
		TrainingMaxScale: cfg.Defaults.TrainingMaxScale,
	}, log)

	req := models.PlanRequest{
		Preset:       opts.preset,
		IncludeNotes: opts.withNotes,
		Athlete: models.Athlete{
			Name:          opts.name,
			Maxes:         opts.maxes,
			Light:         opts.light,
			BarbellWeight: opts.bar,
			Cycles:        opts.cycles,
		},
	}
	if req.Name == "" {
		key := req.Preset
		if key == "" {
			key = cfg.Defaults.Preset
		}
		def, err := catalog.Get(key)
		if err != nil {
			return err
		}
		a, err := prompt.ReadAthlete(in, out, def.MainLiftNames())
		if err != nil {
			return err
		}
		req.Name, req.Maxes, req.Light = a.Name, a.Maxes, a.Light
	}

	plan, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}

	text, err := format(plan, opts.format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, text); err != nil {
		return err
	}

	if opts.out == "" {
		return nil
	}
	fileFormat := "markdown"
	if ext := strings.ToLower(filepath.Ext(opts.out)); ext == ".html" || ext == ".htm" {
		fileFormat = "html"
	}
	text, err = format(plan, fileFormat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	fmt.Fprintf(out, "\nPlan written to %s\n", opts.out)
	return nil
}

func format(plan *models.Plan, f string) (string, error) {
	switch f {
	case "markdown", "md", "":
		return render.Markdown(plan), nil
	case "html":
		return render.HTML(plan)
	case "json":
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q", f)
	}
}
