package summarizer

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractiveDeterministic(t *testing.T) {
	text := "The database stores documents. Users upload files every day. " +
		"The database index speeds up queries. Backups run at night. " +
		"The database never loses data."
	e := NewExtractive()

	first, err := e.Summarize(context.Background(), text, Config{MaxSummaryLength: 120})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Summarize(context.Background(), text, Config{MaxSummaryLength: 120})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("run %d differs:\n%q\n%q", i, again, first)
		}
	}
}

func TestExtractivePicksFrequentTopic(t *testing.T) {
	text := "Weather was mild yesterday. " +
		"The pipeline extracts text and the pipeline summarizes the pipeline output. " +
		"Lunch is served at noon."
	e := NewExtractive()

	got, err := e.Summarize(context.Background(), text, Config{MaxSummaryLength: 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "pipeline") {
		t.Errorf("expected the pipeline sentence to be selected, got %q", got)
	}
}

func TestExtractivePreservesOriginalOrder(t *testing.T) {
	first := "Storage engines persist records on disk with storage checksums."
	filler := "It rained."
	last := "Storage compaction reclaims unused storage pages."
	text := first + " " + filler + " " + last

	e := NewExtractive()
	got, err := e.Summarize(context.Background(), text, Config{MaxSummaryLength: 400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	i := strings.Index(got, "persist")
	j := strings.Index(got, "compaction")
	if i < 0 || j < 0 {
		t.Fatalf("expected both storage sentences in %q", got)
	}
	if i > j {
		t.Errorf("sentences out of original order: %q", got)
	}
}

func TestExtractiveSingleSentence(t *testing.T) {
	e := NewExtractive()
	got, err := e.Summarize(context.Background(), "just one fragment without a delimiter", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "just one fragment without a delimiter" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestExtractiveRespectsBudget(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("Sentence number with several common terms repeated here. ")
	}
	e := NewExtractive()

	got, err := e.Summarize(context.Background(), sb.String(), Config{MaxSummaryLength: 120})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Fatal("expected at least one sentence")
	}
	if n := utf8.RuneCountInString(got); n > 120 {
		t.Errorf("summary has %d runes, budget is 120", n)
	}
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"One. Two! Three?", 3},
		{"No delimiter at all", 1},
		{"Trailing period.", 1},
		{"", 0},
	}
	for _, c := range cases {
		if got := splitSentences(c.text); len(got) != c.want {
			t.Errorf("splitSentences(%q) = %d sentences %v, want %d", c.text, len(got), got, c.want)
		}
	}
}
