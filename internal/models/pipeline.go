package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentState tracks a document's progress through the summarization
// pipeline. A document always moves forward; failed states are terminal.
type DocumentState string

const (
	DocumentStatePending             DocumentState = "pending"
	DocumentStateExtracting          DocumentState = "extracting"
	DocumentStateExtracted           DocumentState = "extracted"
	DocumentStateExtractionFailed    DocumentState = "extraction_failed"
	DocumentStateSummarizing         DocumentState = "summarizing"
	DocumentStateSummarized          DocumentState = "summarized"
	DocumentStateSummarizationFailed DocumentState = "summarization_failed"
)

// SummaryResult is the outcome of summarizing a single document.
// It is never persisted.
type SummaryResult struct {
	DocumentID  uuid.UUID
	Summary     string
	GeneratedAt time.Time
}

// DocumentFailure records why one document inside a project batch did not
// produce a summary.
type DocumentFailure struct {
	DocumentID uuid.UUID
	Title      string
	State      DocumentState
	Reason     string
}

// ProjectSummaryResult is the outcome of summarizing every document in a
// project. Attempted always equals Succeeded plus Failed.
type ProjectSummaryResult struct {
	ProjectID   uuid.UUID
	Attempted   int
	Succeeded   int
	Failed      int
	Summary     string
	Failures    []DocumentFailure
	GeneratedAt time.Time
}

type DocumentStatistics struct {
	Characters int
	Words      int
	Lines      int
}

// DocumentInsights combines a document's summary with its extraction
// metadata and text statistics.
type DocumentInsights struct {
	DocumentID uuid.UUID
	Summary    string
	Metadata   map[string]string
	PageCount  int
	Statistics DocumentStatistics
}
