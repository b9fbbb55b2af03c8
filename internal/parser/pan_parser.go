package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"pansyslog.io/config"
	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/render"
	"pansyslog.io/models"
)

type parseJob struct {
	lineNum int
	line    string
}

// LineError ties a per-record failure to its 1-based input line
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result is the decode outcome for one line; exactly one field is set
type Result struct {
	Entry *models.PANLogEntry
	Err   error
}

// EntryExporter receives every rendered entry in input order, just before
// its text line is written. Skipped records reach neither sink.
type EntryExporter interface {
	WriteEntry(entry *models.PANLogEntry) error
}

// RunOptions wires the sinks for one run. Exporter may be nil.
type RunOptions struct {
	Out       io.Writer
	Projector *render.Projector
	Exporter  EntryExporter
}

// Summary reports what happened to the input
type Summary struct {
	Processed int
	Rendered  int
	Skipped   int
	Dropped   int
}

type PANParser struct {
	metrics *ParserMetrics
	opts    DecodeOptions
	workers int
	logger  *slog.Logger
}

func NewPANParser(cfg *config.Config, logger *slog.Logger) *PANParser {
	numWorkers := cfg.ParserWorkers
	if numWorkers == 0 {
		numWorkers = runtime.NumCPU()
		if numWorkers < 2 {
			numWorkers = 2
		}
	}
	return &PANParser{
		metrics: NewParserMetrics(),
		opts: DecodeOptions{
			StripEnvelope: cfg.StripEnvelope,
			StrictLength:  cfg.StrictLength,
		},
		workers: numWorkers,
		logger:  logger,
	}
}

func (p *PANParser) Metrics() *ParserMetrics {
	return p.metrics
}

// ParseLogFile reads the whole input (a path, or "-" for stdin) and runs it
// through ProcessLines.
func (p *PANParser) ParseLogFile(ctx context.Context, inputPath string, opts RunOptions) (Summary, error) {
	var in io.Reader = os.Stdin
	if inputPath != config.StdinPath {
		file, err := os.Open(inputPath)
		if err != nil {
			return Summary{}, panerrors.WrapFatal(fmt.Errorf("failed to open input file: %w", err), "parser", "ParseLogFile")
		}
		defer file.Close()
		in = file
	}

	lines, err := ReadLines(in)
	if err != nil {
		return Summary{}, panerrors.WrapFatal(fmt.Errorf("failed to read %s: %w", inputPath, err), "parser", "ParseLogFile")
	}
	p.logger.Debug("input loaded", "path", inputPath, "lines", len(lines), "workers", p.workers)

	return p.ProcessLines(ctx, lines, opts)
}

// ReadLines reads r to EOF and returns its lines without "\n" or "\r\n"
// terminators. Line length is not capped; an oversized record is left for
// the decoder to judge.
func ReadLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
	}
}

// ParseLines decodes lines in parallel. Results are indexed like lines, so
// output order never depends on worker scheduling.
func (p *PANParser) ParseLines(ctx context.Context, lines []string) ([]Result, error) {
	results := make([]Result, len(lines))
	jobs := make(chan parseJob, p.workers)

	g, ctx := errgroup.WithContext(ctx)

	// Stage 1: feed lines to the workers
	g.Go(func() error {
		defer close(jobs)
		for i, line := range lines {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- parseJob{lineNum: i + 1, line: line}:
			}
		}
		return nil
	})

	// Stage 2: decoders, one per worker
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			dec := NewDecoder(p.opts)
			for job := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				entry, err := dec.Decode(job.line)
				if err != nil {
					results[job.lineNum-1] = Result{Err: &LineError{
						Line: job.lineNum,
						Err:  panerrors.WrapInvalid(err, "parser", "Decode"),
					}}
					continue
				}
				entry.LineNum = job.lineNum
				results[job.lineNum-1] = Result{Entry: entry}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessLines decodes, renders and exports every line. Invalid records are
// logged, counted and skipped; anything else stops the run with whatever was
// already written left in place. Cancellation is returned unclassified.
func (p *PANParser) ProcessLines(ctx context.Context, lines []string, opts RunOptions) (Summary, error) {
	var sum Summary

	results, err := p.ParseLines(ctx, lines)
	if err != nil {
		if ctx.Err() != nil {
			return sum, err
		}
		return sum, panerrors.WrapFatal(err, "parser", "ProcessLines")
	}

	w := bufio.NewWriter(opts.Out)
	for _, res := range results {
		sum.Processed++
		p.metrics.linesProcessed.Inc()

		if res.Err != nil {
			if !panerrors.IsInvalid(res.Err) {
				return sum, panerrors.WrapFatal(res.Err, "parser", "ProcessLines")
			}
			p.skip(&sum, res.Err)
			continue
		}

		entry := res.Entry
		if entry.Dropped > 0 {
			sum.Dropped += entry.Dropped
			p.metrics.fieldsDropped.Add(float64(entry.Dropped))
			p.logger.Debug("values past schema end dropped",
				"line", entry.LineNum, "log_type", entry.LogType, "dropped", entry.Dropped)
		}

		out, err := opts.Projector.Render(entry)
		if err != nil {
			if !panerrors.IsInvalid(err) {
				return sum, panerrors.WrapFatal(err, "render", "Render")
			}
			p.skip(&sum, &LineError{Line: entry.LineNum, Err: panerrors.WrapInvalid(err, "render", "Render")})
			continue
		}

		if opts.Exporter != nil {
			if err := opts.Exporter.WriteEntry(entry); err != nil {
				return sum, panerrors.WrapFatal(fmt.Errorf("export line %d: %w", entry.LineNum, err), "parser", "ProcessLines")
			}
		}

		if _, err := w.WriteString(out + "\n"); err != nil {
			return sum, panerrors.WrapFatal(fmt.Errorf("write output: %w", err), "parser", "ProcessLines")
		}
		sum.Rendered++
		p.metrics.recordsRendered.WithLabelValues(entry.LogType).Inc()
	}

	if err := w.Flush(); err != nil {
		return sum, panerrors.WrapFatal(fmt.Errorf("flush output: %w", err), "parser", "ProcessLines")
	}
	return sum, nil
}

func (p *PANParser) skip(sum *Summary, err error) {
	sum.Skipped++
	p.metrics.skipped(err)
	p.logger.Warn("skipping line", "error", err)
}
