// Package batch outlines every PDF and HTML file of a directory into one
// JSON artifact per input.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/export"
	"github.com/tsawler/outliner/format"
	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/internal/metrics"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/text"
)

// ErrTimeout is recorded for documents that exceed Options.Timeout
var ErrTimeout = errors.New("document processing timed out")

// Options configure a batch run
type Options struct {
	InputDir  string
	OutputDir string

	// Workers bounds the documents processed in parallel
	Workers int

	// Timeout bounds one document; zero disables it
	Timeout time.Duration

	MaxPages     int
	MaxFileBytes int64
	Heading      layout.HeadingConfig
	Navigation   htmldoc.NavigationExclusionMode

	// Metrics is optional; MetricsFile receives a text dump after the run
	Metrics     metrics.Metrics
	MetricsFile string

	Logger zerolog.Logger
}

// FileResult describes the outcome for one input file
type FileResult struct {
	Input    string
	Output   string
	Format   format.Format
	Pages    int
	Headings int
	Warnings []outliner.Warning
	Elapsed  time.Duration

	// Err is set when a degraded artifact was written
	Err error
}

// Summary describes a finished run
type Summary struct {
	RunID     string
	Files     []FileResult
	Succeeded int
	Degraded  int
	Elapsed   time.Duration
}

// job is one discovered input and its artifact path
type job struct {
	input  string
	output string
}

// Run processes the input directory. Per-document failures produce degraded
// artifacts and never fail the run; errors are returned only for setup
// problems (missing input directory, unwritable output directory) and for
// cancellation of ctx.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.NewString()}
	logger := opts.Logger.With().Str("run_id", summary.RunID).Logger()

	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", opts.InputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}

	jobs, err := discover(opts.InputDir, opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		logger.Warn().Str("input", opts.InputDir).Msg("no PDF or HTML files found in input directory")
		return summary, nil
	}
	logger.Info().Int("files", len(jobs)).Msg("processing files")

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, len(jobs))
	scheduled := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			results[i] = process(gctx, opts, logger, j)
			return nil
		})
	}
	_ = g.Wait()

	summary.Files = results[:scheduled]
	for _, r := range summary.Files {
		if r.Err != nil {
			summary.Degraded++
		} else {
			summary.Succeeded++
		}
	}
	summary.Elapsed = time.Since(start)

	logger.Info().
		Int("files", len(summary.Files)).
		Int("succeeded", summary.Succeeded).
		Int("degraded", summary.Degraded).
		Dur("elapsed", summary.Elapsed).
		Msg("processed files")

	if opts.Metrics != nil && opts.MetricsFile != "" {
		if err := opts.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn().Err(err).Msg("could not write metrics file")
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// discover lists the supported files of dir in name order and assigns each
// an artifact path. Inputs sharing a stem keep their extension in the
// artifact name so no artifact overwrites another.
func discover(dir, outDir string) ([]job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	stems := make(map[string]int)
	for _, e := range entries {
		if e.IsDir() || !format.Detect(e.Name()).Supported() {
			continue
		}
		names = append(names, e.Name())
		stems[stemOf(e.Name())]++
	}
	sort.Strings(names)

	jobs := make([]job, 0, len(names))
	for _, name := range names {
		stem := stemOf(name)
		if stems[stem] > 1 {
			stem = name
		}
		jobs = append(jobs, job{
			input:  filepath.Join(dir, name),
			output: filepath.Join(outDir, text.CleanFilename(stem)+".json"),
		})
	}
	return jobs, nil
}

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// outcome carries an extraction result across the timeout boundary
type outcome struct {
	result   *outliner.Result
	warnings []outliner.Warning
	err      error
}

// process outlines one file and writes its artifact
func process(ctx context.Context, opts Options, logger zerolog.Logger, j job) FileResult {
	start := time.Now()
	res := FileResult{
		Input:  j.input,
		Output: j.output,
		Format: format.Detect(j.input),
	}
	log := logger.With().Str("file", filepath.Base(j.input)).Logger()
	log.Debug().Msg("processing")

	out := extract(ctx, opts, log, j.input)
	res.Warnings = out.warnings
	res.Err = out.err

	var artifact export.Artifact
	if out.err != nil {
		artifact = export.Degraded(out.err)
	} else {
		artifact = out.result.Artifact()
		res.Pages = out.result.ScannedPages
		res.Headings = len(artifact.Outline)
	}

	if err := artifact.WriteFile(j.output); err != nil && res.Err == nil {
		res.Err = err
	}
	res.Elapsed = time.Since(start)

	status := metrics.StatusOK
	if res.Err != nil {
		status = metrics.StatusDegraded
		log.Error().Err(res.Err).Dur("elapsed", res.Elapsed).Msg("failed to outline document")
	} else {
		log.Info().
			Int("pages", res.Pages).
			Int("headings", res.Headings).
			Str("title_source", out.result.TitleSource.String()).
			Dur("elapsed", res.Elapsed).
			Msg("completed")
	}
	if len(res.Warnings) > 0 {
		log.Warn().Str("warnings", outliner.FormatWarnings(res.Warnings)).Msg("extraction warnings")
	}

	if opts.Metrics != nil {
		opts.Metrics.ObserveDocument(strings.ToLower(res.Format.String()), status, res.Elapsed, res.Pages, res.Headings)
		opts.Metrics.ObserveWarnings(len(res.Warnings))
		if out.result != nil {
			opts.Metrics.ObserveTitleSource(out.result.TitleSource.String())
		}
	}
	return res
}

// extract runs the outliner, giving up when the per-document timeout or
// ctx expires. An abandoned extraction finishes in the background and its
// result is dropped.
func extract(ctx context.Context, opts Options, logger zerolog.Logger, path string) outcome {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	ext := outliner.Open(path).
		MaxPages(opts.MaxPages).
		MaxFileBytes(opts.MaxFileBytes).
		Navigation(opts.Navigation).
		WithLogger(logger)
	if opts.Heading.MaxHeadings > 0 {
		ext = ext.HeadingConfig(opts.Heading)
	}

	done := make(chan outcome, 1)
	go func() {
		result, warnings, err := ext.Outline()
		done <- outcome{result: result, warnings: warnings, err: err}
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return outcome{err: fmt.Errorf("%w after %s", ErrTimeout, opts.Timeout)}
		}
		return outcome{err: ctx.Err()}
	}
}
