package outliner

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/outliner/export"
	"github.com/tsawler/outliner/format"
	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/reader"
	"github.com/tsawler/outliner/text"
)

var (
	// ErrUnsupportedFormat is returned for inputs that are neither PDF nor HTML
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile and ErrTooLarge are shared with the PDF reader
	ErrEmptyFile = reader.ErrEmptyFile
	ErrTooLarge  = reader.ErrTooLarge
)

// Extractor provides a fluent interface for outlining PDF and HTML files.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file, or a document extracted elsewhere
	filename string
	doc      *model.Document

	options ExtractOptions
}

// clone creates a copy of the Extractor.
func (e *Extractor) clone() *Extractor {
	newExt := *e
	return &newExt
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MaxPages limits extraction to the first n pages. Non-positive values
// restore the default of 50.
//
// Example:
//
//	result, _, err := outliner.Open("doc.pdf").MaxPages(10).Outline()
func (e *Extractor) MaxPages(n int) *Extractor {
	if n <= 0 {
		n = reader.DefaultMaxPages
	}
	newExt := e.clone()
	newExt.options.maxPages = n
	return newExt
}

// MaxFileBytes rejects input files larger than n bytes with ErrTooLarge.
// Zero restores the default limit; negative values disable the check.
func (e *Extractor) MaxFileBytes(n int64) *Extractor {
	newExt := e.clone()
	newExt.options.maxFileBytes = n
	return newExt
}

// HeadingConfig replaces the heading selection configuration.
//
// Example:
//
//	cfg := layout.DefaultHeadingConfig()
//	cfg.MaxHeadings = 20
//	result, _, err := outliner.Open("doc.pdf").HeadingConfig(cfg).Outline()
func (e *Extractor) HeadingConfig(cfg layout.HeadingConfig) *Extractor {
	newExt := e.clone()
	newExt.options.heading = cfg
	return newExt
}

// Navigation sets how HTML navigation, headers and footers are filtered.
// It has no effect on PDF input.
func (e *Extractor) Navigation(mode htmldoc.NavigationExclusionMode) *Extractor {
	newExt := e.clone()
	newExt.options.navigation = mode
	return newExt
}

// WithLogger sets the logger used by extraction and analysis.
func (e *Extractor) WithLogger(logger zerolog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Outline extracts the document and returns its title and heading outline.
// Warnings indicate non-fatal issues; an error means the document could not
// be read at all.
//
// Example:
//
//	result, warnings, err := outliner.Open("doc.pdf").Outline()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", outliner.FormatWarnings(warnings))
//	}
func (e *Extractor) Outline() (*Result, []Warning, error) {
	start := time.Now()

	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}

	result, err := e.analyze(doc)
	if err != nil {
		return nil, warnings, err
	}
	result.Elapsed = time.Since(start)

	e.options.logger.Debug().
		Str("file", e.filename).
		Int("pages", result.ScannedPages).
		Int("headings", len(result.Outline)).
		Str("language", result.Language).
		Dur("elapsed", result.Elapsed).
		Msg("outlined document")

	return result, warnings, nil
}

// Artifact extracts the document and returns the formatted artifact.
func (e *Extractor) Artifact() (export.Artifact, []Warning, error) {
	result, warnings, err := e.Outline()
	if err != nil {
		return export.Artifact{}, warnings, err
	}
	return result.Artifact(), warnings, nil
}

// Document returns the extracted spans and metadata without analyzing them.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.doc != nil {
		return e.doc, nil, nil
	}
	if e.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	f, err := e.detectFormat()
	if err != nil {
		return nil, nil, err
	}

	switch f {
	case format.PDF:
		return e.readPDF()
	case format.HTML:
		return e.readHTML()
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, e.filename)
	}
}

// PageCount returns the number of pages of the source document.
func (e *Extractor) PageCount() (int, error) {
	doc, _, err := e.Document()
	if err != nil {
		return 0, err
	}
	return doc.TotalPages, nil
}

// detectFormat trusts a known extension and sniffs the content otherwise.
func (e *Extractor) detectFormat() (format.Format, error) {
	if f := format.Detect(e.filename); f.Supported() {
		return f, nil
	}
	f, err := format.DetectFile(e.filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("detect format: %w", err)
	}
	return f, nil
}

func (e *Extractor) readPDF() (*model.Document, []Warning, error) {
	r, err := reader.OpenWithOptions(e.filename, reader.Options{
		MaxFileBytes: e.options.maxFileBytes,
		Logger:       &e.options.logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer r.Close()

	doc, err := r.Document(e.options.maxPages)
	warnings := convertWarnings("pdf", r.Warnings())
	if err != nil {
		return nil, warnings, fmt.Errorf("read pdf: %w", err)
	}
	return doc, warnings, nil
}

func (e *Extractor) readHTML() (*model.Document, []Warning, error) {
	if err := e.checkSize(); err != nil {
		return nil, nil, err
	}

	r, err := htmldoc.OpenWithOptions(e.filename, htmldoc.Options{
		Navigation: e.options.navigation,
		Logger:     &e.options.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	doc, err := r.Document(e.options.maxPages)
	if errors.Is(err, htmldoc.ErrNoContent) {
		// an HTML page with no visible text still has a title
		return &model.Document{Metadata: r.Metadata()},
			[]Warning{{Source: "html", Message: err.Error()}}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read html: %w", err)
	}
	return doc, nil, nil
}

// checkSize applies the file size limits the PDF reader enforces itself
func (e *Extractor) checkSize() error {
	info, err := os.Stat(e.filename)
	if err != nil {
		return fmt.Errorf("open html: %w", err)
	}

	limit := e.options.maxFileBytes
	if limit == 0 {
		limit = reader.DefaultMaxFileBytes
	}
	switch {
	case info.Size() == 0:
		return ErrEmptyFile
	case limit > 0 && info.Size() > limit:
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
	}
	return nil
}

// analyze runs heading detection, title extraction and the text statistics
// concurrently over the shared read-only spans.
func (e *Extractor) analyze(doc *model.Document) (*Result, error) {
	spans := doc.Spans
	logger := e.options.logger

	result := &Result{
		TotalPages:   doc.TotalPages,
		ScannedPages: doc.ScannedPages,
		Spans:        len(spans),
	}

	var g errgroup.Group
	g.Go(func() error {
		detector := layout.NewHeadingDetectorWithConfig(e.options.heading).WithLogger(logger)
		result.Outline = detector.Detect(spans)
		return nil
	})
	g.Go(func() error {
		result.Title, result.TitleSource = layout.NewTitleExtractor().
			WithLogger(logger).
			Extract(doc.Metadata.Title, spans)
		return nil
	})
	g.Go(func() error {
		result.Language = text.DetectLanguage(spans)
		result.Densities = text.PageDensities(spans)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func convertWarnings(source string, ws []reader.Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{Source: source, Page: w.Page, Message: w.Message}
	}
	return out
}
