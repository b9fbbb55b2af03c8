package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pansyslog.io/config"
	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/export"
	"pansyslog.io/internal/parser"
	"pansyslog.io/internal/render"
)

const timeLayout = "2006-01-02 15:04:05"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 when processing
// failed, 2 for configuration errors, 130 when interrupted.
func run(args []string, stdout, stderr io.Writer) int {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg := config.LoadConfig()
	if err := parseFlags(cfg, args, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", envErr)
	}

	// Configuration errors abort before any record is read
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}
	opts, err := cfg.Projection()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}
	projector, err := render.NewProjector(opts)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 2
	}

	if cfg.Timestamps {
		fmt.Fprintf(stderr, "PAN SYSLOG Parser Start: %s\n\n", time.Now().Format(timeLayout))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := process(ctx, cfg, projector, stdout, logger)

	if cfg.Timestamps {
		fmt.Fprintf(stderr, "\n\nPAN SYSLOG Parser Finish: %s\nHappy Hunting...\n\n", time.Now().Format(timeLayout))
	}
	return code
}

// process owns the output sinks: each is closed exactly once, after the
// last line, whether or not processing succeeded.
func process(ctx context.Context, cfg *config.Config, projector *render.Projector, stdout io.Writer, logger *slog.Logger) int {
	runOpts := parser.RunOptions{Out: stdout, Projector: projector}

	var outFile *os.File
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			logger.Error("failed to create output file", "path", cfg.OutputPath, "error", err)
			return 1
		}
		outFile = f
		runOpts.Out = f
	}

	var exporter *export.ParquetExporter
	if cfg.ParquetPath != "" {
		exp, err := export.NewParquetExporter(cfg.ParquetPath, 4)
		if err != nil {
			logger.Error("failed to create parquet export", "path", cfg.ParquetPath, "error", err)
			if outFile != nil {
				outFile.Close()
			}
			return 1
		}
		exporter = exp
		runOpts.Exporter = exp
	}

	p := parser.NewPANParser(cfg, logger)
	summary, runErr := p.ParseLogFile(ctx, cfg.InputPath, runOpts)

	code := 0
	switch {
	case runErr == nil:
	case panerrors.IsFatal(runErr):
		logger.Error("processing stopped", "error", runErr)
		code = 1
	case errors.Is(runErr, context.Canceled):
		logger.Warn("processing interrupted", "error", runErr)
		code = 130
	default:
		logger.Error("processing failed", "error", runErr)
		code = 1
	}
	if exporter != nil {
		if err := exporter.Close(); err != nil {
			logger.Error("failed to close parquet export", "error", err)
			code = 1
		} else {
			logger.Info("parquet export written", "path", cfg.ParquetPath, "rows", exporter.Rows())
		}
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			logger.Error("failed to close output file", "error", err)
			code = 1
		}
	}

	p.Metrics().Report(logger)
	logger.Info("run complete",
		"processed", summary.Processed,
		"rendered", summary.Rendered,
		"skipped", summary.Skipped,
		"dropped_values", summary.Dropped)
	return code
}
