package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Pramod3245/Doc-agents/internal/cache"
	"github.com/Pramod3245/Doc-agents/internal/extractor"
	"github.com/Pramod3245/Doc-agents/internal/metrics"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/storage"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"
	"github.com/Pramod3245/Doc-agents/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmptyProjectSummary is returned for projects without documents; no
// extraction or summarization runs for them.
const EmptyProjectSummary = "Project contains no documents."

// DocumentSource provides the document records the pipeline works on.
type DocumentSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Document, error)
}

// ProjectSource resolves project records.
type ProjectSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// TextExtractor turns stored files into plain text.
type TextExtractor interface {
	Supports(name string) bool
	Extract(ctx context.Context, r io.Reader, name string) (*extractor.Result, error)
}

// TextSummarizer condenses extracted text.
type TextSummarizer interface {
	Summarize(ctx context.Context, text string, cfg summarizer.Config) (string, error)
}

// SummaryService runs the extract-then-summarize pipeline for single
// documents and whole projects.
type SummaryService struct {
	docRepo     DocumentSource
	projectRepo ProjectSource
	store       storage.Store
	extractor   TextExtractor
	summarizer  TextSummarizer
	cache       cache.Cache
	metrics     *metrics.Metrics
	cfg         summarizer.Config
	backend     string
	cfgHash     string
	ttl         time.Duration
	workers     int
	logger      *zap.Logger
}

func NewSummaryService(
	docRepo DocumentSource,
	projectRepo ProjectSource,
	store storage.Store,
	textExtractor TextExtractor,
	textSummarizer TextSummarizer,
	summaryCache cache.Cache,
	m *metrics.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *SummaryService {
	sumCfg := summarizer.FromConfig(&cfg.Summarizer)

	workers := cfg.Pipeline.Workers
	if workers < 1 {
		workers = 1
	}

	return &SummaryService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		store:       store,
		extractor:   textExtractor,
		summarizer:  textSummarizer,
		cache:       summaryCache,
		metrics:     m,
		cfg:         sumCfg,
		backend:     cfg.Summarizer.Backend,
		cfgHash: cache.ConfigHash(
			cfg.Summarizer.Backend,
			string(sumCfg.Style),
			sumCfg.MaxSummaryLength,
			cfg.Summarizer.WindowSize,
			cfg.Summarizer.Overlap,
		),
		ttl:     cfg.Cache.TTL,
		workers: workers,
		logger:  logger,
	}
}

// SummarizeDocument summarizes one document.
func (s *SummaryService) SummarizeDocument(ctx context.Context, documentID uuid.UUID) (*models.SummaryResult, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	summary, _, err := s.summarizeOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &models.SummaryResult{
		DocumentID:  doc.ID,
		Summary:     summary,
		GeneratedAt: time.Now(),
	}, nil
}

// SummarizeProject summarizes every document in a project concurrently
// and condenses the per-document summaries into one project digest. One
// failing document never stops the others; its failure is reported in
// the result instead.
func (s *SummaryService) SummarizeProject(ctx context.Context, projectID uuid.UUID) (*models.ProjectSummaryResult, error) {
	start := time.Now()

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByProjectID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project documents: %w", err)
	}

	// Aggregation order is upload time ascending with id as tie-break,
	// whatever order the source returned the documents in.
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.Before(docs[j].UploadedAt)
		}
		return docs[i].ID.String() < docs[j].ID.String()
	})

	if len(docs) == 0 {
		s.metrics.RecordPipelineRun("ok", time.Since(start))
		return &models.ProjectSummaryResult{
			ProjectID:   project.ID,
			Summary:     EmptyProjectSummary,
			GeneratedAt: time.Now(),
		}, nil
	}

	type docOutcome struct {
		summary string
		state   models.DocumentState
		err     error
	}

	outcomes := make([]docOutcome, len(docs))
	indices := make(chan int)

	workers := s.workers
	if workers > len(docs) {
		workers = len(docs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indices {
				if err := ctx.Err(); err != nil {
					outcomes[idx] = docOutcome{state: models.DocumentStatePending, err: err}
					continue
				}
				summary, state, err := s.summarizeOne(ctx, docs[idx])
				outcomes[idx] = docOutcome{summary: summary, state: state, err: err}
			}
		}()
	}
	for i := range docs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.metrics.RecordPipelineRun("cancelled", time.Since(start))
		return nil, err
	}

	result := &models.ProjectSummaryResult{
		ProjectID: project.ID,
		Attempted: len(docs),
	}

	// Per-document blocks keep the documents' upload order regardless of
	// which worker finished first.
	blocks := make([]string, 0, len(docs))
	for i, doc := range docs {
		out := outcomes[i]
		if out.err != nil {
			result.Failed++
			result.Failures = append(result.Failures, models.DocumentFailure{
				DocumentID: doc.ID,
				Title:      doc.Title,
				State:      out.state,
				Reason:     out.err.Error(),
			})
			s.metrics.RecordPipelineDocument(string(out.state))
			s.logger.Warn("Document failed in project pipeline",
				zap.String("document_id", doc.ID.String()),
				zap.String("state", string(out.state)),
				zap.Error(out.err),
			)
			continue
		}
		result.Succeeded++
		s.metrics.RecordPipelineDocument(string(models.DocumentStateSummarized))
		blocks = append(blocks, fmt.Sprintf("Document: %s\nSummary: %s", doc.Title, out.summary))
	}

	if result.Succeeded == 0 {
		result.GeneratedAt = time.Now()
		s.metrics.RecordPipelineRun("failed", time.Since(start))
		return result, nil
	}

	sumStart := time.Now()
	overall, err := s.summarizer.Summarize(ctx, strings.Join(blocks, "\n\n"), s.cfg)
	if err != nil {
		s.metrics.RecordSummary(s.backend, "error", time.Since(sumStart))
		s.metrics.RecordPipelineRun("failed", time.Since(start))
		return nil, fmt.Errorf("failed to summarize project digest: %w", err)
	}
	s.metrics.RecordSummary(s.backend, "ok", time.Since(sumStart))

	result.Summary = overall
	result.GeneratedAt = time.Now()
	s.metrics.RecordPipelineRun("ok", time.Since(start))

	s.logger.Info("Project summarized",
		zap.String("project_id", project.ID.String()),
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(start)),
	)

	return result, nil
}

// DocumentInsights combines a document's summary with extraction
// metadata and plain text statistics in a single pass over the file.
func (s *SummaryService) DocumentInsights(ctx context.Context, documentID uuid.UUID) (*models.DocumentInsights, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	res, err := s.extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarizeText(ctx, doc.ID, res)
	if err != nil {
		return nil, err
	}

	return &models.DocumentInsights{
		DocumentID: doc.ID,
		Summary:    summary,
		Metadata:   res.Metadata,
		PageCount:  res.PageCount,
		Statistics: textStatistics(res.Text),
	}, nil
}

// summarizeOne runs one document through the pipeline and reports the
// state it ended in.
func (s *SummaryService) summarizeOne(ctx context.Context, doc *models.Document) (string, models.DocumentState, error) {
	s.metrics.DocumentStarted()
	defer s.metrics.DocumentDone()

	res, err := s.extract(ctx, doc)
	if err != nil {
		return "", models.DocumentStateExtractionFailed, err
	}

	summary, err := s.summarizeText(ctx, doc.ID, res)
	if err != nil {
		return "", models.DocumentStateSummarizationFailed, err
	}

	return summary, models.DocumentStateSummarized, nil
}

func (s *SummaryService) extract(ctx context.Context, doc *models.Document) (*extractor.Result, error) {
	f, err := s.store.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open stored file: %v", extractor.ErrExtractionFailed, err)
	}
	defer f.Close()

	format := strings.ToLower(filepath.Ext(doc.FilePath))
	start := time.Now()
	res, err := s.extractor.Extract(ctx, f, doc.FilePath)
	if err != nil {
		s.metrics.RecordExtraction(format, "error", time.Since(start))
		return nil, err
	}
	s.metrics.RecordExtraction(format, "ok", time.Since(start))

	return res, nil
}

// summarizeText summarizes already extracted text, going through the
// summary cache. Cache failures degrade to misses.
func (s *SummaryService) summarizeText(ctx context.Context, docID uuid.UUID, res *extractor.Result) (string, error) {
	key := cache.Key{DocumentID: docID, ContentHash: res.ContentHash, ConfigHash: s.cfgHash}

	cached, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup("error")
		s.logger.Warn("Summary cache lookup failed", zap.Error(err))
	case ok:
		s.metrics.RecordCacheLookup("hit")
		return cached, nil
	default:
		s.metrics.RecordCacheLookup("miss")
	}

	start := time.Now()
	summary, err := s.summarizer.Summarize(ctx, res.Text, s.cfg)
	if err != nil {
		s.metrics.RecordSummary(s.backend, "error", time.Since(start))
		return "", err
	}
	s.metrics.RecordSummary(s.backend, "ok", time.Since(start))

	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		s.logger.Warn("Summary cache store failed", zap.Error(err))
	}

	return summary, nil
}

func textStatistics(text string) models.DocumentStatistics {
	stats := models.DocumentStatistics{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
	if text != "" {
		stats.Lines = strings.Count(text, "\n") + 1
	}
	return stats
}
