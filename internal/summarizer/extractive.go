package summarizer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractive is a deterministic rule-based backend: sentences are scored
// by normalized word frequency and the best ones are emitted in their
// original order. It needs no network and never returns ErrUnavailable,
// which makes it the offline fallback and the default.
type Extractive struct{}

func NewExtractive() *Extractive {
	return &Extractive{}
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "i": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "she": {}, "that": {},
	"the": {}, "their": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "will": {}, "with": {}, "you": {},
}

func (b *Extractive) Summarize(ctx context.Context, text string, cfg Config) (string, error) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "", fmt.Errorf("%w: no sentences in input", ErrFailed)
	}
	if len(sentences) == 1 {
		return sentences[0], nil
	}

	freq := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range tokenize(sentence) {
			if _, stop := stopwords[word]; !stop {
				freq[word]++
			}
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sentence := range sentences {
		words := tokenize(sentence)
		if len(words) == 0 {
			continue
		}
		var total int
		for _, word := range words {
			total += freq[word]
		}
		ranked = append(ranked, scored{idx: i, score: float64(total) / float64(len(words))})
	}
	if len(ranked) == 0 {
		return sentences[0], nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].idx < ranked[j].idx
	})

	budget := cfg.MaxSummaryLength
	if budget <= 0 {
		budget = utf8.RuneCountInString(text) / 3
	}

	// Best sentences first until the budget is spent; the top sentence is
	// always taken.
	var picked []int
	used := 0
	for _, cand := range ranked {
		length := utf8.RuneCountInString(sentences[cand.idx])
		if len(picked) > 0 && used+length+1 > budget {
			continue
		}
		picked = append(picked, cand.idx)
		used += length + 1
		if used >= budget {
			break
		}
	}
	sort.Ints(picked)

	parts := make([]string, len(picked))
	for i, idx := range picked {
		parts[i] = sentences[idx]
	}
	return strings.Join(parts, " "), nil
}

func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
