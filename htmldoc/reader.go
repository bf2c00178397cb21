package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// ErrNoContent is returned when a document has no visible text
var ErrNoContent = errors.New("html has no visible text")

// Options controls how an HTML document is read
type Options struct {
	// Navigation selects which page furniture is skipped
	// Default: NavigationExclusionStandard
	Navigation NavigationExclusionMode

	// Logger receives debug output; nil disables logging
	Logger *zerolog.Logger
}

// DefaultOptions returns the standard reading options
func DefaultOptions() Options {
	return Options{Navigation: NavigationExclusionStandard}
}

// Reader provides the laid-out spans of an HTML document.
type Reader struct {
	metadata model.Metadata
	blocks   []block
	spans    []model.TextSpan
	pages    int
	logger   zerolog.Logger
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	return OpenWithOptions(filename, DefaultOptions())
}

// OpenWithOptions opens an HTML file with custom options.
func OpenWithOptions(filename string, opts Options) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open html: %w", err)
	}
	defer f.Close()

	return OpenReaderWithOptions(f, opts)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	return OpenReaderWithOptions(r, DefaultOptions())
}

// OpenReaderWithOptions parses HTML from an io.Reader with custom options.
func OpenReaderWithOptions(r io.Reader, opts Options) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	reader := &Reader{logger: zerolog.Nop()}
	if opts.Logger != nil {
		reader.logger = *opts.Logger
	}

	reader.extractHead(doc)
	reader.extractBody(doc, opts.Navigation)
	reader.spans, reader.pages = layoutBlocks(reader.blocks)

	reader.logger.Debug().
		Int("blocks", len(reader.blocks)).
		Int("spans", len(reader.spans)).
		Int("pages", reader.pages).
		Msg("laid out html")

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Metadata returns the document metadata from <title> and <meta> tags
func (r *Reader) Metadata() model.Metadata {
	return r.metadata
}

// PageCount returns the number of synthetic pages the document fills
func (r *Reader) PageCount() int {
	return r.pages
}

// PageSpans returns the spans laid out on page n (1-based)
func (r *Reader) PageSpans(n int) ([]model.TextSpan, error) {
	if n < 1 || n > r.pages {
		return nil, fmt.Errorf("page %d out of range (1-%d)", n, r.pages)
	}
	var spans []model.TextSpan
	for _, s := range r.spans {
		if s.Page == n {
			spans = append(spans, s)
		}
	}
	return spans, nil
}

// Document returns the spans of the first maxPages synthetic pages. A
// non-positive maxPages reads every page.
func (r *Reader) Document(maxPages int) (*model.Document, error) {
	if len(r.spans) == 0 {
		return nil, ErrNoContent
	}

	limit := r.pages
	if maxPages > 0 && maxPages < limit {
		limit = maxPages
	}

	doc := &model.Document{
		Metadata:     r.metadata,
		TotalPages:   r.pages,
		ScannedPages: limit,
	}
	for _, s := range r.spans {
		if s.Page > limit {
			break
		}
		doc.Spans = append(doc.Spans, s)
	}
	return doc, nil
}

// extractHead reads <title> and the author/description meta tags.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.metadata.Title = text.Normalize(getTextContent(c))
			case "meta":
				r.applyMeta(c)
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

func (r *Reader) applyMeta(n *html.Node) {
	name := getAttr(n, "name")
	if name == "" {
		name = getAttr(n, "property")
	}
	content := strings.TrimSpace(getAttr(n, "content"))
	if content == "" {
		return
	}

	switch strings.ToLower(name) {
	case "author":
		r.metadata.Author = content
	case "description", "og:description":
		r.metadata.Subject = content
	case "generator":
		r.metadata.Producer = content
	case "og:title":
		if r.metadata.Title == "" {
			r.metadata.Title = content
		}
	}
}

// extractBody turns the visible body content into blocks.
func (r *Reader) extractBody(n *html.Node, mode NavigationExclusionMode) {
	body := findElement(n, "body")
	if body == nil {
		body = n
	}

	w := &walker{exclusion: newExclusionChecker(mode, body)}
	w.traverse(body)
	r.blocks = w.blocks
}

// walker collects blocks in document order
type walker struct {
	exclusion *exclusionChecker
	blocks    []block
}

func (w *walker) emit(b block) {
	b.text = text.Normalize(b.text)
	if b.text != "" {
		w.blocks = append(w.blocks, b)
	}
}

func (w *walker) traverse(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) || w.exclusion.exclude(n) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			w.emit(block{
				kind:  blockHeading,
				text:  getTextContent(n),
				level: int(n.Data[1] - '0'),
				bold:  true,
			})
			return

		case "p", "div", "dt", "dd", "figcaption", "caption", "summary",
			"article", "section", "main", "header", "footer", "nav", "aside", "address":
			if isBlockContainer(n) {
				break
			}
			w.emit(block{
				kind: blockParagraph,
				text: getTextContent(n),
				bold: isAllBold(n),
			})
			return

		case "li":
			w.emit(block{
				kind: blockListItem,
				text: getDirectTextContent(n),
				bold: isAllBold(n),
			})
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
					w.traverse(c)
				}
			}
			return

		case "tr":
			w.emit(block{
				kind: blockTableRow,
				text: rowText(n),
				bold: isHeaderRow(n),
			})
			return

		case "pre":
			w.emit(block{kind: blockCode, text: getTextContent(n)})
			return

		case "blockquote":
			if isBlockContainer(n) {
				break
			}
			w.emit(block{kind: blockQuote, text: getTextContent(n), italic: true})
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.traverse(c)
	}
}

// rowText joins the cells of a table row
func rowText(tr *html.Node) string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			if t := getTextContent(c); t != "" {
				cells = append(cells, t)
			}
		}
	}
	return strings.Join(cells, " ")
}

// isHeaderRow reports whether every cell of a row is a <th>
func isHeaderRow(tr *html.Node) bool {
	cells := 0
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			cells++
		case "td":
			return false
		}
	}
	return cells > 0
}

// isAllBold reports whether all visible text under n sits inside <b> or
// <strong>, the way authors mark run-in headings.
func isAllBold(n *html.Node) bool {
	total := textLength(n)
	return total > 0 && boldTextLength(n, false) == total
}

func boldTextLength(n *html.Node, inBold bool) int {
	if n.Type == html.TextNode {
		if inBold {
			return len(strings.TrimSpace(n.Data))
		}
		return 0
	}
	if n.Type == html.ElementNode && (n.Data == "b" || n.Data == "strong") {
		inBold = true
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += boldTextLength(c, inBold)
	}
	return total
}

// shouldSkipElement returns true if the element never holds visible text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "dl", "table", "h1", "h2", "h3", "h4", "h5", "h6",
				"blockquote", "pre", "article", "section", "header", "footer", "nav", "aside", "figure":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "td", "th", "tr":
			result.WriteString(" ")
		}
	}
}

// getDirectTextContent gets the text of a node, excluding nested block elements.
func getDirectTextContent(n *html.Node) string {
	var result strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			result.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				result.WriteString(getTextContent(c))
			}
		}
	}
	return strings.TrimSpace(result.String())
}
