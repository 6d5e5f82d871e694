package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Pramod3245/Doc-agents/internal/cache"
	"github.com/Pramod3245/Doc-agents/internal/extractor"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/storage"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"
	"github.com/Pramod3245/Doc-agents/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubDocRepo struct {
	byID      map[uuid.UUID]*models.Document
	byProject map[uuid.UUID][]*models.Document
}

func (r *stubDocRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return doc, nil
}

func (r *stubDocRepo) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Document, error) {
	return r.byProject[projectID], nil
}

type stubProjectRepo struct {
	byID map[uuid.UUID]*models.Project
}

func (r *stubProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return project, nil
}

// recordingBackend echoes its input so assertions can see exactly what
// the pipeline fed it. Workers call it concurrently.
type recordingBackend struct {
	mu    sync.Mutex
	calls []string
	fail  func(text string) error
}

func (b *recordingBackend) Summarize(ctx context.Context, text string, cfg summarizer.Config) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, text)
	b.mu.Unlock()
	if b.fail != nil {
		if err := b.fail(text); err != nil {
			return "", err
		}
	}
	return text, nil
}

func (b *recordingBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *recordingBackend) lastCall() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return ""
	}
	return b.calls[len(b.calls)-1]
}

type pipelineEnv struct {
	svc      *SummaryService
	docs     *stubDocRepo
	projects *stubProjectRepo
	store    *storage.LocalStore
	backend  *recordingBackend
	ownerID  uuid.UUID
}

func newPipelineEnv(t *testing.T) *pipelineEnv {
	t.Helper()
	logger := zap.NewNop()

	store, err := storage.NewLocalStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	cfg := &config.Config{}
	cfg.Summarizer = config.SummarizerConfig{
		Backend:    "test",
		Style:      "extractive",
		WindowSize: 4000,
		Overlap:    200,
	}
	cfg.Cache = config.CacheConfig{TTL: time.Hour}
	cfg.Pipeline.Workers = 4

	env := &pipelineEnv{
		docs:     &stubDocRepo{byID: map[uuid.UUID]*models.Document{}, byProject: map[uuid.UUID][]*models.Document{}},
		projects: &stubProjectRepo{byID: map[uuid.UUID]*models.Project{}},
		store:    store,
		backend:  &recordingBackend{},
		ownerID:  uuid.New(),
	}
	env.svc = NewSummaryService(
		env.docs,
		env.projects,
		store,
		extractor.New(0, logger),
		summarizer.New(env.backend, cfg.Summarizer.WindowSize, cfg.Summarizer.Overlap, logger),
		cache.NewMemory(),
		nil,
		cfg,
		logger,
	)
	return env
}

func (env *pipelineEnv) addProject(t *testing.T) *models.Project {
	t.Helper()
	project := &models.Project{ID: uuid.New(), Name: "reports", OwnerID: env.ownerID, CreatedAt: time.Now()}
	env.projects.byID[project.ID] = project
	return project
}

func (env *pipelineEnv) addDocument(t *testing.T, projectID *uuid.UUID, name, content string) *models.Document {
	t.Helper()
	id := uuid.New()
	rel := fmt.Sprintf("%s/%s_%s", env.ownerID, id, name)
	if _, err := env.store.Save(context.Background(), rel, strings.NewReader(content)); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}

	doc := &models.Document{
		ID:         id,
		Title:      name,
		FilePath:   rel,
		OwnerID:    env.ownerID,
		ProjectID:  projectID,
		UploadedAt: time.Now(),
	}
	env.docs.byID[id] = doc
	if projectID != nil {
		env.docs.byProject[*projectID] = append(env.docs.byProject[*projectID], doc)
	}
	return doc
}

func TestSummarizeDocument(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "notes.txt", "Plain text about the quarterly results.")

	result, err := env.svc.SummarizeDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Plain text about the quarterly results." {
		t.Errorf("got summary %q", result.Summary)
	}
	if result.DocumentID != doc.ID {
		t.Errorf("got document id %s", result.DocumentID)
	}
	if result.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestSummarizeDocumentNotFound(t *testing.T) {
	env := newPipelineEnv(t)

	_, err := env.svc.SummarizeDocument(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummarizeDocumentMissingFile(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "notes.txt", "content")
	if err := env.store.Remove(context.Background(), doc.FilePath); err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, err := env.svc.SummarizeDocument(context.Background(), doc.ID)
	if !errors.Is(err, extractor.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestSummarizeDocumentUnsupportedFormat(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "image.png", "binary-ish")

	_, err := env.svc.SummarizeDocument(context.Background(), doc.ID)
	if !errors.Is(err, extractor.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSummarizeDocumentEmptyFile(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "empty.txt", "")

	result, err := env.svc.SummarizeDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != summarizer.NoContentPlaceholder {
		t.Errorf("got %q", result.Summary)
	}
	if env.backend.callCount() != 0 {
		t.Errorf("backend invoked %d times for empty document", env.backend.callCount())
	}
}

func TestSummarizeDocumentUsesCache(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "notes.txt", "Cache this summary please.")
	ctx := context.Background()

	if _, err := env.svc.SummarizeDocument(ctx, doc.ID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := env.svc.SummarizeDocument(ctx, doc.ID); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n := env.backend.callCount(); n != 1 {
		t.Errorf("expected 1 backend call across runs, got %d", n)
	}
}

func TestSummarizeDocumentCacheMissOnContentChange(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "notes.txt", "Original content here.")
	ctx := context.Background()

	first, err := env.svc.SummarizeDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	if _, err := env.store.Save(ctx, doc.FilePath, strings.NewReader("Revised content here.")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	second, err := env.svc.SummarizeDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n := env.backend.callCount(); n != 2 {
		t.Errorf("expected 2 backend calls, got %d", n)
	}
	if first.Summary == second.Summary {
		t.Error("summary did not follow content change")
	}
}

func TestSummarizeProject(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)
	env.addDocument(t, &project.ID, "alpha.txt", "First report about revenue.")
	env.addDocument(t, &project.ID, "beta.txt", "Second report about costs.")
	env.addDocument(t, &project.ID, "gamma.txt", "Third report about hiring.")

	result, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Attempted != 3 || result.Succeeded != 3 || result.Failed != 0 {
		t.Fatalf("counts: attempted=%d succeeded=%d failed=%d", result.Attempted, result.Succeeded, result.Failed)
	}
	if len(result.Failures) != 0 {
		t.Errorf("unexpected failures: %v", result.Failures)
	}

	// The digest is built from titled blocks in upload order.
	digest := env.backend.lastCall()
	for _, title := range []string{"alpha.txt", "beta.txt", "gamma.txt"} {
		if !strings.Contains(digest, "Document: "+title) {
			t.Errorf("digest missing block for %s:\n%s", title, digest)
		}
	}
	a := strings.Index(digest, "alpha.txt")
	b := strings.Index(digest, "beta.txt")
	c := strings.Index(digest, "gamma.txt")
	if !(a < b && b < c) {
		t.Errorf("blocks out of upload order: %d %d %d", a, b, c)
	}
	if result.Summary != digest {
		t.Errorf("summary is not the condensed digest:\n%q\n%q", result.Summary, digest)
	}

	// A second run over the unchanged project produces the same digest
	// regardless of worker completion order.
	again, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("unexpected error on rerun: %v", err)
	}
	if again.Summary != result.Summary {
		t.Errorf("rerun produced a different digest:\n%q\n%q", again.Summary, result.Summary)
	}
}

func TestSummarizeProjectUploadOrder(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)

	newest := env.addDocument(t, &project.ID, "new.txt", "Newest report.")
	oldest := env.addDocument(t, &project.ID, "old.txt", "Oldest report.")
	middle := env.addDocument(t, &project.ID, "mid.txt", "Middle report.")

	base := time.Now()
	oldest.UploadedAt = base.Add(-2 * time.Hour)
	middle.UploadedAt = base.Add(-time.Hour)
	newest.UploadedAt = base

	// The source hands the documents back newest-first; aggregation
	// order must not depend on that.
	env.docs.byProject[project.ID] = []*models.Document{newest, middle, oldest}

	result, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	digest := env.backend.lastCall()
	a := strings.Index(digest, "old.txt")
	b := strings.Index(digest, "mid.txt")
	c := strings.Index(digest, "new.txt")
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("digest missing blocks: %q", digest)
	}
	if !(a < b && b < c) {
		t.Errorf("digest not in upload order: old=%d mid=%d new=%d\n%s", a, b, c, digest)
	}
	if result.Summary != digest {
		t.Errorf("summary is not the condensed digest:\n%q\n%q", result.Summary, digest)
	}
}

func TestSummarizeProjectUploadOrderTieBreak(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)

	first := env.addDocument(t, &project.ID, "left.txt", "Left content.")
	second := env.addDocument(t, &project.ID, "right.txt", "Right content.")

	uploaded := time.Now()
	first.UploadedAt = uploaded
	second.UploadedAt = uploaded

	lower, higher := first, second
	if second.ID.String() < first.ID.String() {
		lower, higher = second, first
	}
	// Source order is id-descending; the digest comes back ascending.
	env.docs.byProject[project.ID] = []*models.Document{higher, lower}

	if _, err := env.svc.SummarizeProject(context.Background(), project.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	digest := env.backend.lastCall()
	li := strings.Index(digest, lower.Title)
	hi := strings.Index(digest, higher.Title)
	if li < 0 || hi < 0 {
		t.Fatalf("digest missing blocks: %q", digest)
	}
	if li > hi {
		t.Errorf("tie not broken by id ascending:\n%s", digest)
	}
}

func TestSummarizeProjectPartialFailure(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)
	env.addDocument(t, &project.ID, "good.txt", "Readable content.")
	bad := env.addDocument(t, &project.ID, "broken.xyz", "whatever")
	env.addDocument(t, &project.ID, "fine.txt", "More readable content.")

	result, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Attempted != 3 || result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("counts: attempted=%d succeeded=%d failed=%d", result.Attempted, result.Succeeded, result.Failed)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures: %v", result.Failures)
	}
	failure := result.Failures[0]
	if failure.DocumentID != bad.ID || failure.Title != "broken.xyz" {
		t.Errorf("wrong failure: %+v", failure)
	}
	if failure.State != models.DocumentStateExtractionFailed {
		t.Errorf("state = %s", failure.State)
	}
	if failure.Reason == "" {
		t.Error("empty failure reason")
	}
	if strings.Contains(result.Summary, "broken.xyz") {
		t.Error("failed document leaked into the digest")
	}
}

func TestSummarizeProjectEmpty(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)

	result, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != EmptyProjectSummary {
		t.Errorf("got %q", result.Summary)
	}
	if result.Attempted != 0 || result.Succeeded != 0 || result.Failed != 0 {
		t.Errorf("counts: %+v", result)
	}
	if env.backend.callCount() != 0 {
		t.Error("backend invoked for empty project")
	}
}

func TestSummarizeProjectAllFailed(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)
	env.addDocument(t, &project.ID, "one.xyz", "x")
	env.addDocument(t, &project.ID, "two.xyz", "y")

	result, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 0 || result.Failed != 2 {
		t.Fatalf("counts: %+v", result)
	}
	if result.Summary != "" {
		t.Errorf("expected empty summary, got %q", result.Summary)
	}
	if env.backend.callCount() != 0 {
		t.Error("digest generated with zero successful documents")
	}
}

func TestSummarizeProjectNotFound(t *testing.T) {
	env := newPipelineEnv(t)

	_, err := env.svc.SummarizeProject(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummarizeProjectDigestFailure(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)
	env.addDocument(t, &project.ID, "a.txt", "Alpha content.")
	env.addDocument(t, &project.ID, "b.txt", "Beta content.")

	env.backend.fail = func(text string) error {
		if strings.HasPrefix(text, "Document: ") {
			return fmt.Errorf("%w: model rejected digest", summarizer.ErrFailed)
		}
		return nil
	}

	_, err := env.svc.SummarizeProject(context.Background(), project.ID)
	if !errors.Is(err, summarizer.ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
}

func TestSummarizeProjectCancelled(t *testing.T) {
	env := newPipelineEnv(t)
	project := env.addProject(t)
	env.addDocument(t, &project.ID, "a.txt", "Alpha content.")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := env.svc.SummarizeProject(ctx, project.ID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result != nil {
		t.Errorf("expected no result, got %+v", result)
	}
}

func TestDocumentInsights(t *testing.T) {
	env := newPipelineEnv(t)
	doc := env.addDocument(t, nil, "stats.txt", "Hello world line one.\nSecond line here.")

	insights, err := env.svc.DocumentInsights(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insights.DocumentID != doc.ID {
		t.Errorf("document id %s", insights.DocumentID)
	}
	if insights.Summary != "Hello world line one.\nSecond line here." {
		t.Errorf("summary %q", insights.Summary)
	}
	if insights.Statistics.Words != 7 {
		t.Errorf("words = %d", insights.Statistics.Words)
	}
	if insights.Statistics.Lines != 2 {
		t.Errorf("lines = %d", insights.Statistics.Lines)
	}
	if insights.Statistics.Characters != 39 {
		t.Errorf("characters = %d", insights.Statistics.Characters)
	}
	if insights.PageCount != 0 {
		t.Errorf("page count = %d for plain text", insights.PageCount)
	}
}

func TestTextStatisticsEmpty(t *testing.T) {
	stats := textStatistics("")
	if stats.Characters != 0 || stats.Words != 0 || stats.Lines != 0 {
		t.Errorf("expected zeroes, got %+v", stats)
	}
}
