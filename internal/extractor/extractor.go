// Package extractor turns stored document files into plain text plus
// container metadata. Extraction never mutates the source file and never
// talks to the network.
package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrExtractionFailed  = errors.New("extraction failed")
)

// Result holds everything extraction produced for one file. Text may be
// empty for a valid file with no extractable characters; that is not an
// error. ContentHash is the sha-256 of the raw file bytes.
type Result struct {
	Text        string
	PageCount   int
	Metadata    map[string]string
	ContentHash string
}

// metadataKeys maps go-fitz metadata entries onto the names exposed to
// callers. Values are copied only when the container carries them.
var metadataKeys = map[string]string{
	"title":    "title",
	"author":   "author",
	"subject":  "subject",
	"creator":  "creator",
	"producer": "producer",
}

type Extractor struct {
	maxFileSize int64
	logger      *zap.Logger
}

func New(maxFileSize int64, logger *zap.Logger) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Supports reports whether the file name's extension is a format this
// extractor can handle. The check is by extension only; no bytes are read.
func (e *Extractor) Supports(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt", ".md":
		return true
	}
	return false
}

// Extract reads the file from r and produces its text and metadata.
// At most MaxFileSize bytes are buffered; larger inputs fail without
// being read to the end.
func (e *Extractor) Extract(ctx context.Context, r io.Reader, name string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !e.Supports(name) {
		return nil, fmt.Errorf("%w: %s (supported: pdf, txt, md)", ErrUnsupportedFormat, ext)
	}

	data, err := e.readBounded(r, name)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)

	var result *Result
	switch ext {
	case ".pdf":
		result, err = e.extractPDF(data)
		if err != nil {
			return nil, err
		}
	default:
		result = &Result{Text: strings.TrimSpace(sanitizeUTF8(string(data)))}
	}

	result.ContentHash = hex.EncodeToString(hash[:])

	e.logger.Info("Extraction completed",
		zap.String("file", name),
		zap.String("format", ext),
		zap.Int("pages", result.PageCount),
		zap.Int("text_length", len(result.Text)),
	)

	return result, nil
}

// readBounded buffers at most maxFileSize bytes. One extra byte is read
// so oversized inputs are detected without loading them whole.
func (e *Extractor) readBounded(r io.Reader, name string) ([]byte, error) {
	if e.maxFileSize <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrExtractionFailed, name, err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, e.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrExtractionFailed, name, err)
	}
	if int64(len(data)) > e.maxFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, name, e.maxFileSize)
	}

	return data, nil
}

func (e *Extractor) extractPDF(data []byte) (*Result, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			e.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.Error(err),
			)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n") // Add newline between pages
		}
	}

	meta := doc.Metadata()
	metadata := make(map[string]string)
	for src, dst := range metadataKeys {
		if v := strings.TrimSpace(meta[src]); v != "" {
			metadata[dst] = v
		}
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	return &Result{
		Text:      strings.TrimSpace(sanitizeUTF8(textBuilder.String())),
		PageCount: doc.NumPage(),
		Metadata:  metadata,
	}, nil
}
