package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/export"
	"github.com/tsawler/outliner/format"
	"github.com/tsawler/outliner/internal/metrics"
	"github.com/tsawler/outliner/reader"
)

// ErrTimeout is reported when an extraction exceeds Options.Timeout
var ErrTimeout = errors.New("document processing timed out")

// Response headers describing a successful outline
const (
	TitleSourceHeader = "X-Outliner-Title-Source"
	LanguageHeader    = "X-Outliner-Language"
	WarningsHeader    = "X-Outliner-Warnings"
)

// sniffExt names uploads whose format is decided from their content
const sniffExt = ".upload"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeArtifact(w http.ResponseWriter, status int, a export.Artifact) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = a.WriteJSON(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOutline outlines the request body. The format comes from the
// filename query parameter, then the Content-Type header, then the
// content itself.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := s.requestLogger(r)

	name := r.URL.Query().Get("filename")
	ext := uploadExtension(name, r.Header.Get("Content-Type"))
	if name == "" {
		name = "upload" + ext
	}
	log = log.With().Str("file", name).Logger()

	if s.opts.MaxFileBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxFileBytes)
	}

	path, size, err := s.spool(r.Body, ext)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, log, format.Detect(ext), http.StatusRequestEntityTooLarge,
				fmt.Errorf("%w: limit is %d bytes", reader.ErrTooLarge, tooLarge.Limit), start)
			return
		}
		s.fail(w, log, format.Detect(ext), http.StatusBadRequest, fmt.Errorf("read request body: %w", err), start)
		return
	}
	defer os.Remove(path)

	if size == 0 {
		s.fail(w, log, format.Detect(ext), http.StatusUnprocessableEntity, reader.ErrEmptyFile, start)
		return
	}

	result, warnings, err := s.extract(r.Context(), log, path)
	if err != nil {
		status := statusFor(err)
		// temp paths mean nothing to the caller
		err = errors.New(strings.ReplaceAll(err.Error(), path, name))
		s.fail(w, log, format.Detect(ext), status, err, start)
		return
	}

	artifact := result.Artifact()
	elapsed := time.Since(start)

	w.Header().Set(TitleSourceHeader, result.TitleSource.String())
	if result.Language != "" {
		w.Header().Set(LanguageHeader, result.Language)
	}
	if len(warnings) > 0 {
		w.Header().Set(WarningsHeader, fmt.Sprint(len(warnings)))
		log.Warn().Str("warnings", outliner.FormatWarnings(warnings)).Msg("extraction warnings")
	}
	writeArtifact(w, http.StatusOK, artifact)

	log.Info().
		Int("pages", result.ScannedPages).
		Int("headings", len(artifact.Outline)).
		Dur("elapsed", elapsed).
		Msg("completed")

	if s.opts.Metrics != nil {
		f := format.Detect(ext)
		if f == format.Unknown {
			f, _ = format.DetectFile(path)
		}
		s.opts.Metrics.ObserveDocument(strings.ToLower(f.String()), metrics.StatusOK, elapsed, result.ScannedPages, len(artifact.Outline))
		s.opts.Metrics.ObserveTitleSource(result.TitleSource.String())
		s.opts.Metrics.ObserveWarnings(len(warnings))
	}
}

// fail writes a degraded artifact
func (s *Server) fail(w http.ResponseWriter, log zerolog.Logger, f format.Format, status int, err error, start time.Time) {
	elapsed := time.Since(start)
	log.Error().Err(err).Int("status", status).Dur("elapsed", elapsed).Msg("failed to outline document")
	writeArtifact(w, status, export.Degraded(err))

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveDocument(strings.ToLower(f.String()), metrics.StatusDegraded, elapsed, 0, 0)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, outliner.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, reader.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusUnprocessableEntity
	}
}

func uploadExtension(name, contentType string) string {
	if f := format.Detect(name); f.Supported() {
		return strings.ToLower(filepath.Ext(name))
	}
	if f := format.FromContentType(contentType); f.Supported() {
		return f.Extension()
	}
	return sniffExt
}

// spool copies body to a temporary file and returns its path and size
func (s *Server) spool(body io.Reader, ext string) (string, int64, error) {
	f, err := os.CreateTemp(s.opts.TempDir, "outliner-*"+ext)
	if err != nil {
		return "", 0, err
	}

	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", 0, err
	}
	return f.Name(), n, nil
}

type outcome struct {
	result   *outliner.Result
	warnings []outliner.Warning
	err      error
}

// extract outlines the spooled file, giving up when the request is
// cancelled or the timeout passes.
func (s *Server) extract(ctx context.Context, log zerolog.Logger, path string) (*outliner.Result, []outliner.Warning, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	ext := outliner.Open(path).
		MaxPages(s.opts.MaxPages).
		MaxFileBytes(s.opts.MaxFileBytes).
		Navigation(s.opts.Navigation).
		WithLogger(log)
	if s.opts.Heading.MaxHeadings > 0 {
		ext = ext.HeadingConfig(s.opts.Heading)
	}

	done := make(chan outcome, 1)
	go func() {
		result, warnings, err := ext.Outline()
		done <- outcome{result: result, warnings: warnings, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.warnings, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, s.opts.Timeout)
		}
		return nil, nil, ctx.Err()
	}
}
