package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/structscan/config"
	"github.com/alejandrodnm/structscan/internal/adapters/report"
	"github.com/alejandrodnm/structscan/internal/adapters/series"
	"github.com/alejandrodnm/structscan/internal/adapters/storage"
	"github.com/alejandrodnm/structscan/internal/detector"
	"github.com/alejandrodnm/structscan/internal/domain"
	"github.com/alejandrodnm/structscan/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	inputPath := flag.String("input", "", "series JSON file (overrides config)")
	csvPath := flag.String("csv", "", "export break projection CSV (overrides config)")
	table := flag.Bool("table", false, "print full event tables (default: summary line)")
	dryRun := flag.Bool("dry-run", false, "skip persistence")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if *csvPath != "" {
		cfg.Report.CSVPath = *csvPath
	}
	setupLogger(cfg.Log)

	slog.Info("structscan starting",
		"config", *configPath,
		"input", cfg.Input.Path,
		"dry_run", *dryRun,
	)

	det, err := detector.New(detectorConfig(cfg.Detector))
	if err != nil {
		slog.Error("invalid detector config", "err", err)
		os.Exit(1)
	}

	var store ports.Storage
	if !*dryRun {
		s, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	reporters := []ports.Reporter{report.NewConsole(cfg.Report.Table || *table)}
	if cfg.Report.CSVPath != "" {
		reporters = append(reporters, report.NewCSVExporter(cfg.Report.CSVPath))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, det, series.NewFileProvider(cfg.Input.Path), store, reporters); err != nil {
		slog.Error("detection pass failed", "err", err)
		os.Exit(1)
	}

	slog.Info("structscan finished cleanly")
}

// run ejecuta exactamente una pasada de detección: carga la serie, detecta,
// reporta y persiste. La detección es batch; no hay loop ni reintentos.
func run(ctx context.Context, det *detector.Detector, provider ports.SeriesProvider, store ports.Storage, reporters []ports.Reporter) error {
	start := time.Now()

	s, err := provider.Load(ctx)
	if err != nil {
		return err
	}

	breaks, diags := det.DetectAll(s.Bars, s.Fractals, s.Strokes)
	blocks := det.DetectOrderBlocks(s.Bars, s.Fractals, s.Strokes)

	for _, diag := range diags {
		slog.Warn("record skipped", "index", diag.Index, "err", diag.Err)
	}

	pass := domain.Pass{
		Symbol:     s.Symbol,
		DetectedAt: time.Now().UTC(),
		Breaks:     breaks,
		Blocks:     blocks,
	}

	for _, r := range reporters {
		if err := r.Report(ctx, pass); err != nil {
			slog.Warn("reporter error", "err", err)
		}
	}

	if store != nil {
		if err := store.SavePass(ctx, pass); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	slog.Info("pass complete",
		"symbol", s.Symbol,
		"bars", len(s.Bars),
		"fractals", len(s.Fractals),
		"strokes", len(s.Strokes),
		"breaks", len(breaks),
		"blocks", len(blocks),
		"skipped", len(diags),
		"took", time.Since(start),
	)
	return nil
}

func detectorConfig(cfg config.DetectorConfig) detector.Config {
	return detector.Config{
		MinATRMultiple:                 cfg.MinATRMultiple,
		MinVolumeRatio:                 cfg.MinVolumeRatio,
		MaxTimeBars:                    cfg.MaxTimeBars,
		FXLookback:                     cfg.FXLookback,
		FXMinStrength:                  cfg.FXMinStrength,
		BILookback:                     cfg.BILookback,
		BIMinPower:                     cfg.BIMinPower,
		CHOCHMomentumRequired:          cfg.CHOCHMomentumRequired,
		CHOCHInternalStructureRequired: cfg.CHOCHInternalStructureRequired,
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
