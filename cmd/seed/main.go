// Command seed creates a demo user with a project and a few sample
// documents, so the pipeline can be tried without uploading anything.
// Running it twice is safe; it skips seeding when the demo user exists.
package main

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Pramod3245/Doc-agents/internal/dto"
	"github.com/Pramod3245/Doc-agents/internal/repository"
	"github.com/Pramod3245/Doc-agents/internal/service"
	"github.com/Pramod3245/Doc-agents/internal/storage"
	"github.com/Pramod3245/Doc-agents/pkg/config"
	"github.com/Pramod3245/Doc-agents/pkg/logger"
	"github.com/Pramod3245/Doc-agents/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@docman.local"
	demoUsername = "demo"
	demoPassword = "demo-password"
)

var sampleDocuments = []struct {
	name    string
	content string
}{
	{
		name: "welcome.md",
		content: `# Welcome

This project holds sample documents for the summarization pipeline.
Upload your own files next to them or summarize the whole project as it is.
`,
	},
	{
		name: "quarterly-report.txt",
		content: `Revenue grew eleven percent over the previous quarter, driven by the new
self-serve plan. Costs stayed flat because hiring was paused in March.
The support backlog doubled after the pricing change and remains the
biggest operational risk. Churn is stable at two percent. The board asked
for a follow-up analysis of the support backlog before the next meeting.
`,
	},
	{
		name: "meeting-notes.txt",
		content: `Attendees agreed to ship the import feature behind a flag by Friday.
Ana owns the rollout checklist. Open question: do we backfill historic
data for existing accounts, or only enable import for new ones? Decision
postponed until the storage estimate is ready.
`,
	},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	store, err := storage.NewLocalStore(cfg.Upload.Dir, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	projectRepo := repository.NewProjectRepository(db, appLogger)

	userService := service.NewUserService(userRepo, appLogger)
	docService := service.NewDocumentService(docRepo, projectRepo, store, appLogger)
	projectService := service.NewProjectService(projectRepo, docRepo, userRepo, appLogger)

	appLogger.Info("Starting database seeding...")

	user, err := userService.Create(ctx, &dto.CreateUserRequest{
		Username: demoUsername,
		Email:    demoEmail,
		Password: demoPassword,
	})
	if errors.Is(err, service.ErrUserExists) {
		appLogger.Info("Demo user already exists, nothing to seed")
		return
	}
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}
	ownerID := uuid.MustParse(user.ID)

	project, err := projectService.Create(ctx, &dto.CreateProjectRequest{
		Name:        "Demo Reports",
		Description: "Sample documents for trying the summarization pipeline",
		OwnerID:     user.ID,
	})
	if err != nil {
		appLogger.Fatal("Failed to create demo project", zap.Error(err))
	}
	projectID := uuid.MustParse(project.ID)

	for _, sample := range sampleDocuments {
		doc, err := docService.Upload(ctx, ownerID, &projectID, "", strings.NewReader(sample.content), sample.name)
		if err != nil {
			appLogger.Error("Failed to seed document", zap.String("name", sample.name), zap.Error(err))
			continue
		}
		appLogger.Info("Seeded document",
			zap.String("name", sample.name),
			zap.String("document_id", doc.ID),
		)
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("user_id", user.ID),
		zap.String("project_id", project.ID),
	)
}
