// Package summarizer condenses extracted document text. A Summarizer
// wraps a pluggable Backend and handles everything backends should not
// care about: empty input, splitting oversized text into windows and
// clamping the final summary length.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable means the backend could not be reached or answer in
	// time. The same call may succeed later.
	ErrUnavailable = errors.New("summarization unavailable")
	// ErrFailed means the backend answered but produced nothing usable.
	// Retrying with the same input will not help.
	ErrFailed = errors.New("summarization failed")
)

// NoContentPlaceholder is returned for documents with no extractable
// text. Backends are never invoked for such documents.
const NoContentPlaceholder = "No content available."

type Style string

const (
	StyleExtractive  Style = "extractive"
	StyleAbstractive Style = "abstractive"
)

type Config struct {
	MaxSummaryLength int // runes, 0 = unbounded
	Style            Style
}

// Backend produces a summary for a single text that already fits in one
// window. Implementations classify their failures as ErrUnavailable or
// ErrFailed so callers can decide whether a retry makes sense.
type Backend interface {
	Summarize(ctx context.Context, text string, cfg Config) (string, error)
}

type Summarizer struct {
	backend    Backend
	windowSize int
	overlap    int
	logger     *zap.Logger
}

func New(backend Backend, windowSize, overlap int, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		backend:    backend,
		windowSize: windowSize,
		overlap:    overlap,
		logger:     logger,
	}
}

// Summarize condenses text within cfg's limits. Texts longer than the
// window size are summarized window by window and the parts joined; a
// failing window fails the whole call.
func (s *Summarizer) Summarize(ctx context.Context, text string, cfg Config) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return NoContentPlaceholder, nil
	}

	windows := SplitWindows(text, s.windowSize, s.overlap)
	if len(windows) == 1 {
		out, err := s.backend.Summarize(ctx, windows[0], cfg)
		if err != nil {
			return "", err
		}
		return clampRunes(strings.TrimSpace(out), cfg.MaxSummaryLength), nil
	}

	s.logger.Info("Summarizing oversized text in windows",
		zap.Int("windows", len(windows)),
		zap.Int("text_length", len(text)),
	)

	parts := make([]string, 0, len(windows))
	for i, window := range windows {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := s.backend.Summarize(ctx, window, cfg)
		if err != nil {
			return "", fmt.Errorf("window %d of %d: %w", i+1, len(windows), err)
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	return clampRunes(strings.TrimSpace(strings.Join(parts, "\n\n")), cfg.MaxSummaryLength), nil
}

// SplitWindows breaks text into rune windows of at most windowSize,
// adjacent windows sharing roughly overlap runes. Cuts snap back to the
// nearest word boundary; a single word longer than the window is cut
// hard. Every rune of the input lands in at least one window.
func SplitWindows(text string, windowSize, overlap int) []string {
	if windowSize <= 0 {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= windowSize {
		overlap = windowSize / 2
	}

	runes := []rune(text)
	if len(runes) <= windowSize {
		return []string{text}
	}

	var windows []string
	start := 0
	for start < len(runes) {
		for start < len(runes) && unicode.IsSpace(runes[start]) {
			start++
		}
		if start >= len(runes) {
			break
		}

		end := start + windowSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			boundary := end
			for boundary > start && !unicode.IsSpace(runes[boundary-1]) {
				boundary--
			}
			if boundary > start {
				end = boundary
			}
		}

		if window := strings.TrimSpace(string(runes[start:end])); window != "" {
			windows = append(windows, window)
		}

		if end == len(runes) {
			break
		}
		next := end - overlap
		for next > start && !unicode.IsSpace(runes[next-1]) {
			next--
		}
		if next <= start {
			next = end
		}
		start = next
	}

	return windows
}

// clampRunes cuts text down to max runes on a word boundary. A non-empty
// input never clamps to empty: a single word over the budget is cut hard.
func clampRunes(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := max
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}

	out := strings.TrimSpace(string(runes[:cut]))
	if out == "" {
		out = strings.TrimSpace(string(runes[:max]))
	}
	return out
}
