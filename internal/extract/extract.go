// Package extract converts uploaded document bytes into best-effort plain
// text. Extraction is the lossy, library-dependent step; everything
// downstream works on the text it produces. A document that defeats every
// strategy yields empty text, never a hard failure for the caller.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Extractor converts raw document bytes into plain text.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Service dispatches extraction by file type and records latencies.
type Service struct {
	// FallbackPdftotext enables the pdftotext subprocess strategy when the
	// Go PDF library produces nothing.
	FallbackPdftotext bool

	Stats *Stats
}

// NewService creates an extraction service with a one-hour stats window.
func NewService(fallbackPdftotext bool) *Service {
	return &Service{
		FallbackPdftotext: fallbackPdftotext,
		Stats:             NewStats(time.Hour),
	}
}

// Text extracts plain text from r according to the filename's extension.
func (s *Service) Text(r io.Reader, filename string) (string, error) {
	e, err := ForFile(filename, s.FallbackPdftotext)
	if err != nil {
		return "", err
	}
	start := time.Now()
	text, err := e.Extract(r, filename)
	if s.Stats != nil {
		s.Stats.Record(time.Since(start).Milliseconds())
	}
	return text, err
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, pdfFallback bool) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: pdfFallback}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
