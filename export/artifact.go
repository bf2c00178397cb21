package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/outliner/model"
)

const (
	// DefaultTitle replaces a blank title
	DefaultTitle = "Document Title"

	// ErrorTitle is the title of a degraded artifact
	ErrorTitle = "Error: Could not extract title"

	minHeadingLen = 2
	maxTextLen    = 150
	ellipsis      = "..."
)

// Entry is one heading of an artifact outline
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Artifact is the persisted result for one document
type Artifact struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`

	// Error is set only on degraded artifacts
	Error string `json:"error,omitempty"`
}

// IsDegraded reports whether the artifact records a failed extraction
func (a Artifact) IsDegraded() bool {
	return a.Error != ""
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	leadingBullet = regexp.MustCompile(`^[•▪▫◦‣⁃\-*]\s*`)
)

// Format builds an artifact from a title and a detected outline.
func Format(title string, headings []model.Heading) Artifact {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	type key struct {
		text string
		page int
	}
	seen := make(map[key]bool)
	entries := []Entry{}

	for _, h := range headings {
		text := strings.TrimSpace(h.Text)
		if utf8.RuneCountInString(text) < minHeadingLen {
			continue
		}

		level := h.Level
		if !level.Valid() {
			level = model.H1
		}
		page := h.Page
		if page < 1 {
			page = 1
		}

		k := key{text: strings.ToLower(text), page: page}
		if seen[k] {
			continue
		}
		seen[k] = true

		entries = append(entries, Entry{
			Level: level.String(),
			Text:  CleanText(text),
			Page:  page,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Page != entries[j].Page {
			return entries[i].Page < entries[j].Page
		}
		return levelPriority(entries[i].Level) < levelPriority(entries[j].Level)
	})

	return Artifact{Title: title, Outline: entries}
}

// Degraded builds the artifact written when extraction fails.
func Degraded(err error) Artifact {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Artifact{
		Title:   ErrorTitle,
		Outline: []Entry{},
		Error:   msg,
	}
}

func levelPriority(level string) int {
	l, _ := model.ParseLevel(level)
	return l.Priority()
}

// CleanText collapses whitespace, strips a leading bullet and surrounding
// punctuation, and truncates text longer than 150 characters.
func CleanText(text string) string {
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	text = leadingBullet.ReplaceAllString(text, "")
	text = strings.Trim(text, ".,;:")

	if utf8.RuneCountInString(text) > maxTextLen {
		runes := []rune(text)
		text = string(runes[:maxTextLen-len(ellipsis)]) + ellipsis
	}
	return text
}

// encode renders the artifact as two-space indented JSON without HTML escaping
func (a Artifact) encode() ([]byte, error) {
	if a.Outline == nil {
		a.Outline = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the artifact as indented JSON
func (a Artifact) WriteJSON(w io.Writer) error {
	data, err := a.encode()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the artifact to path. The file is written to a temporary
// name in the same directory and renamed into place.
func (a Artifact) WriteFile(path string) error {
	data, err := a.encode()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// ReadFile reads an artifact written by WriteFile
func ReadFile(path string) (Artifact, error) {
	var a Artifact
	data, err := os.ReadFile(path)
	if err != nil {
		return a, fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("decode artifact %s: %w", filepath.Base(path), err)
	}
	return a, nil
}
