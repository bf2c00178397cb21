package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/tsawler/outliner/format"
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

func init() {
	// keep pdfcpu from creating a configuration directory on first use
	pdfmodel.ConfigPath = "disable"
}

// Limits applied when the caller does not set their own
const (
	DefaultMaxPages     = 50
	DefaultMaxFileBytes = 100 << 20 // 100 MiB
)

// Sentinel errors returned when a file is rejected before parsing
var (
	ErrEmptyFile = errors.New("file is empty")
	ErrTooLarge  = errors.New("file too large")
	ErrNotPDF    = errors.New("not a PDF file")
)

// Warning is a non-fatal issue met while reading. Page is 0 for
// document-level issues.
type Warning struct {
	Page    int
	Message string
}

// String returns the warning prefixed with its page, if any
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// Options configure a Reader
type Options struct {
	// MaxFileBytes rejects larger files with ErrTooLarge. Zero means
	// DefaultMaxFileBytes; negative disables the check.
	MaxFileBytes int64

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Reader reads spans and metadata from a PDF file
type Reader struct {
	file      *os.File
	pdf       *pdf.Reader
	fileSize  int64
	pageCount int
	metadata  model.Metadata
	warnings  []Warning
	assembler *text.Assembler
	logger    zerolog.Logger
}

// Open opens a PDF file and returns a Reader
func Open(filename string) (*Reader, error) {
	return OpenWithOptions(filename, Options{})
}

// OpenWithOptions opens a PDF file with custom options
func OpenWithOptions(filename string, opts Options) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	r, err := NewReaderWithOptions(file, opts)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// NewReader creates a Reader for an open file. The Reader takes ownership
// of the file and closes it on Close.
func NewReader(file *os.File) (*Reader, error) {
	return NewReaderWithOptions(file, Options{})
}

// NewReaderWithOptions creates a Reader for an open file with custom options
func NewReaderWithOptions(file *os.File, opts Options) (*Reader, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	r := &Reader{
		file:      file,
		fileSize:  info.Size(),
		assembler: text.NewAssembler(),
		logger:    zerolog.Nop(),
	}
	if opts.Logger != nil {
		r.logger = *opts.Logger
	}

	if err := checkFile(file, r.fileSize, opts.MaxFileBytes); err != nil {
		return nil, err
	}

	if r.pdf, err = openPDF(file, r.fileSize); err != nil {
		return nil, err
	}

	r.loadInfo()
	return r, nil
}

// checkFile rejects empty, oversized and non-PDF files
func checkFile(file *os.File, size, maxBytes int64) error {
	if maxBytes == 0 {
		maxBytes = DefaultMaxFileBytes
	}
	switch {
	case size == 0:
		return ErrEmptyFile
	case maxBytes > 0 && size > maxBytes:
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, size, maxBytes)
	}

	f, err := format.DetectFromReader(io.NewSectionReader(file, 0, size))
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if f != format.PDF {
		return ErrNotPDF
	}
	return nil
}

// openPDF parses the cross-reference structure, turning parser panics
// into errors.
func openPDF(file *os.File, size int64) (pr *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parse pdf: malformed file: %v", p)
		}
	}()

	pr, err = pdf.NewReader(file, size)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	return pr, nil
}

// loadInfo reads the page count and Info dictionary. pdfcpu is tried first;
// the trailer is the fallback for files pdfcpu cannot validate.
func (r *Reader) loadInfo() {
	ctx, err := r.readContext()
	if err == nil {
		r.pageCount = ctx.PageCount
		r.metadata = model.Metadata{
			Title:    ctx.XRefTable.Title,
			Author:   ctx.XRefTable.Author,
			Subject:  ctx.XRefTable.Subject,
			Creator:  ctx.XRefTable.Creator,
			Producer: ctx.XRefTable.Producer,
		}
		return
	}

	r.logger.Debug().Err(err).Msg("pdfcpu rejected file, reading trailer")
	r.addWarning(0, fmt.Sprintf("metadata read from trailer: %v", err))

	r.pageCount = r.pdf.NumPage()
	r.metadata = r.trailerMetadata()
}

// readContext validates the file with pdfcpu in relaxed mode
func (r *Reader) readContext() (ctx *pdfmodel.Context, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdfcpu: %v", p)
		}
	}()

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	ctx, err = api.ReadValidateAndOptimize(io.NewSectionReader(r.file, 0, r.fileSize), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

// trailerMetadata reads the Info dictionary through the trailer
func (r *Reader) trailerMetadata() (meta model.Metadata) {
	defer func() {
		if p := recover(); p != nil {
			r.addWarning(0, fmt.Sprintf("info dictionary unreadable: %v", p))
		}
	}()

	info := r.pdf.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	return model.Metadata{
		Title:    info.Key("Title").Text(),
		Author:   info.Key("Author").Text(),
		Subject:  info.Key("Subject").Text(),
		Creator:  info.Key("Creator").Text(),
		Producer: info.Key("Producer").Text(),
	}
}

// Close closes the underlying file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	return r.pageCount
}

// FileSize returns the size of the PDF file in bytes
func (r *Reader) FileSize() int64 {
	return r.fileSize
}

// Metadata returns the document Info dictionary fields
func (r *Reader) Metadata() model.Metadata {
	return r.metadata
}

// Warnings returns the non-fatal issues recorded so far
func (r *Reader) Warnings() []Warning {
	return append([]Warning(nil), r.warnings...)
}

func (r *Reader) addWarning(page int, msg string) {
	r.warnings = append(r.warnings, Warning{Page: page, Message: msg})
}

// Document extracts the spans of the first maxPages pages. A maxPages of
// zero or less means DefaultMaxPages. Pages that fail to parse are skipped
// with a warning; an error is returned only when every page fails.
func (r *Reader) Document(maxPages int) (*model.Document, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	limit := min(r.pdf.NumPage(), maxPages)

	doc := &model.Document{
		Metadata:     r.metadata,
		TotalPages:   r.pageCount,
		ScannedPages: limit,
	}

	failed, empty := 0, 0
	var lastErr error
	for n := 1; n <= limit; n++ {
		spans, err := r.PageSpans(n)
		if err != nil {
			failed++
			lastErr = err
			r.addWarning(n, err.Error())
			continue
		}
		if len(spans) == 0 {
			empty++
			r.addWarning(n, "no extractable text")
			continue
		}
		doc.Spans = append(doc.Spans, spans...)
	}

	if limit > 0 && failed == limit {
		return nil, fmt.Errorf("extract text: %w", lastErr)
	}

	r.logger.Debug().
		Int("pages", limit).
		Int("total_pages", r.pageCount).
		Int("spans", len(doc.Spans)).
		Int("empty_pages", empty).
		Msg("extracted pdf spans")

	return doc, nil
}

// PageSpans extracts the text spans of one page (1-based)
func (r *Reader) PageSpans(pageNum int) (spans []model.TextSpan, err error) {
	if pageNum < 1 || pageNum > r.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", pageNum, r.pdf.NumPage())
	}

	defer func() {
		if p := recover(); p != nil {
			spans = nil
			err = fmt.Errorf("malformed content on page %d: %v", pageNum, p)
		}
	}()

	page := r.pdf.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", pageNum)
	}

	box := pageBox(page)
	frags := fragmentsFromContent(page.Content().Text, box)
	return r.assembler.Assemble(pageNum, frags), nil
}

// mediaBox is a page's visible area in PDF user space
type mediaBox struct {
	x0, y0, x1, y1 float64
}

// Letter size, used when a page has no usable MediaBox
var defaultMediaBox = mediaBox{0, 0, 612, 792}

func (b mediaBox) height() float64 {
	return b.y1 - b.y0
}

// pageBox returns the page's MediaBox, following Parent links for
// inherited values.
func pageBox(page pdf.Page) mediaBox {
	v := page.V
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if mb.Len() == 4 {
			box := mediaBox{
				x0: mb.Index(0).Float64(),
				y0: mb.Index(1).Float64(),
				x1: mb.Index(2).Float64(),
				y1: mb.Index(3).Float64(),
			}
			if box.height() > 0 && box.x1 > box.x0 {
				return box
			}
		}
		v = v.Key("Parent")
	}
	return defaultMediaBox
}

// ascent is the height of a glyph above its baseline as a fraction of the
// font size; the remainder of the size lies below the baseline.
const ascent = 0.8

// fragmentsFromContent converts glyph runs from PDF user space (origin
// bottom-left, Y at the baseline) to top-left page coordinates.
func fragmentsFromContent(glyphs []pdf.Text, box mediaBox) []text.Fragment {
	frags := make([]text.Fragment, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || strings.Trim(g.S, "\r\n") == "" {
			continue
		}
		size := g.FontSize
		if size <= 0 {
			size = 1
		}

		top := box.y1 - (g.Y + size*ascent)
		frags = append(frags, text.NewFragment(g.S, g.X-box.x0, top, g.W, g.Font, size))
	}
	return frags
}
