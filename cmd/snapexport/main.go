// Command snapexport extracts download-link records from a rendered export
// page and writes the accepted ones to snap_export.csv.
//
// Usage:
//
//	snapexport -url https://portal.example/export   # load the live page
//	snapexport -file export.html                    # parse a saved page
//	snapexport -file - < export.html                # parse stdin
//	snapexport -file export.html -out -             # stream the csv to stdout
//	snapexport -config snapexport.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/snapdown/snapexport/export"
	"github.com/snapdown/snapexport/idgen"
	"github.com/snapdown/snapexport/tabsource"
)

func main() {
	configPath := flag.String("config", "", "path to snapexport.yaml config file")
	pageURL := flag.String("url", "", "export page URL to load in a browser")
	filePath := flag.String("file", "", "saved export page to parse (- for stdin)")
	outDir := flag.String("out", "", "directory for snap_export.csv (default .), - for stdout")
	auto := flag.Bool("auto", false, "accept every record without prompting")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger = logger.With("run", idgen.Prefixed("run_", idgen.Default)())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *pageURL, *filePath, *outDir, *auto); err != nil {
		logger.Error("snapexport: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, pageURL, filePath, outDir string, auto bool) error {
	cfg := &export.Config{}
	if configPath != "" {
		loaded, err := export.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	// Flags win over config.
	if pageURL != "" {
		cfg.Input.URL = pageURL
	}
	if filePath != "" {
		cfg.Input.File = filePath
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if auto {
		cfg.Confirm.Auto = true
	}

	rawHTML, err := loadDocument(ctx, logger, cfg)
	if err != nil {
		return err
	}

	rows, err := tabsource.Parse(rawHTML)
	if err != nil {
		return fmt.Errorf("read table: %w", err)
	}
	logger.Info("snapexport: table located", "rows", len(rows))

	var confirmer export.Confirmer = export.NewTermConfirmer(nil, nil)
	if cfg.Confirm.Auto {
		confirmer = export.AutoConfirmer{}
	}

	var sink export.Sink = export.FileSink{Dir: cfg.Output.Dir}
	if cfg.Output.Dir == "-" {
		sink = export.WriterSink{}
	}

	runner := export.New(logger, confirmer, sink)
	res, err := runner.Run(ctx, rows)
	if err != nil {
		return err
	}

	if res.Cancelled {
		logger.Info("snapexport: run cancelled, no artifact written")
		return nil
	}
	if cfg.Output.Dir == "-" {
		logger.Info("snapexport: artifact streamed to stdout", "records", res.Accepted)
		return nil
	}
	logger.Info("snapexport: artifact written",
		"file", export.ArtifactName, "dir", cfg.Output.Dir, "records", res.Accepted)
	return nil
}

// loadDocument obtains the export page HTML: a saved file, stdin, or a live
// page rendered in a browser.
func loadDocument(ctx context.Context, logger *slog.Logger, cfg *export.Config) ([]byte, error) {
	switch {
	case cfg.Input.File == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case cfg.Input.File != "":
		data, err := os.ReadFile(cfg.Input.File)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", cfg.Input.File, err)
		}
		return data, nil
	case cfg.Input.URL != "":
		bcfg := cfg.Browser
		bcfg.Logger = logger
		return tabsource.LoadRendered(ctx, cfg.Input.URL, bcfg)
	default:
		fmt.Fprintln(os.Stderr, "usage: snapexport -url <url> | -file <path> [-out <dir>] [-auto]")
		os.Exit(1)
		return nil, nil
	}
}
