package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Pramod3245/Doc-agents/internal/api/handlers"
	"github.com/Pramod3245/Doc-agents/internal/cache"
	"github.com/Pramod3245/Doc-agents/internal/extractor"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/service"
	"github.com/Pramod3245/Doc-agents/internal/storage"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"
	"github.com/Pramod3245/Doc-agents/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubDocs struct {
	byID      map[uuid.UUID]*models.Document
	byProject map[uuid.UUID][]*models.Document
}

func (r *stubDocs) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return doc, nil
}

func (r *stubDocs) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Document, error) {
	return r.byProject[projectID], nil
}

type stubProjects struct {
	byID map[uuid.UUID]*models.Project
}

func (r *stubProjects) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return project, nil
}

// echoBackend returns the text it was given.
type echoBackend struct{}

func (echoBackend) Summarize(ctx context.Context, text string, cfg summarizer.Config) (string, error) {
	return text, nil
}

type routerEnv struct {
	app      *fiber.App
	docs     *stubDocs
	projects *stubProjects
	store    *storage.LocalStore
	ownerID  uuid.UUID
}

func newRouterEnv(t *testing.T) *routerEnv {
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
	cfg.Pipeline.Workers = 2

	env := &routerEnv{
		docs:     &stubDocs{byID: map[uuid.UUID]*models.Document{}, byProject: map[uuid.UUID][]*models.Document{}},
		projects: &stubProjects{byID: map[uuid.UUID]*models.Project{}},
		store:    store,
		ownerID:  uuid.New(),
	}

	summaryService := service.NewSummaryService(
		env.docs,
		env.projects,
		store,
		extractor.New(0, logger),
		summarizer.New(echoBackend{}, cfg.Summarizer.WindowSize, cfg.Summarizer.Overlap, logger),
		cache.NewMemory(),
		nil,
		cfg,
		logger,
	)

	docHandler := handlers.NewDocumentHandler(nil, summaryService, nil, logger)
	projectHandler := handlers.NewProjectHandler(nil, summaryService, logger)
	userHandler := handlers.NewUserHandler(nil, logger)

	env.app = SetupRouter(docHandler, projectHandler, userHandler, t.TempDir(), 1<<20, logger)
	return env
}

func (env *routerEnv) addDocument(t *testing.T, projectID *uuid.UUID, name, content string) *models.Document {
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

func TestHealthzRoute(t *testing.T) {
	env := newRouterEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestMetricsRoute(t *testing.T) {
	env := newRouterEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSummarizeDocumentRoute(t *testing.T) {
	env := newRouterEnv(t)
	doc := env.addDocument(t, nil, "notes.txt", "A short report about the release.")

	url := "/api/v1/documents/" + doc.ID.String() + "/summarize"
	resp, err := env.app.Test(httptest.NewRequest(http.MethodPost, url, nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		DocumentID string `json:"document_id"`
		Summary    string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DocumentID != doc.ID.String() {
		t.Errorf("expected document id %s, got %s", doc.ID, body.DocumentID)
	}
	if body.Summary != "A short report about the release." {
		t.Errorf("unexpected summary: %q", body.Summary)
	}
}

func TestSummarizeDocumentRouteErrors(t *testing.T) {
	env := newRouterEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+uuid.NewString()+"/summarize", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown document: expected 404, got %d", resp.StatusCode)
	}

	resp, err = env.app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/documents/not-a-uuid/summarize", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed id: expected 400, got %d", resp.StatusCode)
	}
}

func TestSummarizeProjectRoute(t *testing.T) {
	env := newRouterEnv(t)
	project := &models.Project{ID: uuid.New(), Name: "reports", OwnerID: env.ownerID, CreatedAt: time.Now()}
	env.projects.byID[project.ID] = project
	env.addDocument(t, &project.ID, "alpha.txt", "Alpha findings.")
	env.addDocument(t, &project.ID, "beta.txt", "Beta findings.")

	url := "/api/v1/projects/" + project.ID.String() + "/summarize"
	resp, err := env.app.Test(httptest.NewRequest(http.MethodPost, url, nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		ProjectID string `json:"project_id"`
		Attempted int    `json:"attempted"`
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		Summary   string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ProjectID != project.ID.String() {
		t.Errorf("expected project id %s, got %s", project.ID, body.ProjectID)
	}
	if body.Attempted != 2 || body.Succeeded != 2 || body.Failed != 0 {
		t.Errorf("unexpected counts: attempted %d succeeded %d failed %d", body.Attempted, body.Succeeded, body.Failed)
	}
	if !strings.Contains(body.Summary, "Alpha findings.") || !strings.Contains(body.Summary, "Beta findings.") {
		t.Errorf("digest missing document summaries: %q", body.Summary)
	}
}
