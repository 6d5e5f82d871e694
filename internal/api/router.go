package api

import (
	"github.com/Pramod3245/Doc-agents/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRouter(
	docHandler *handlers.DocumentHandler,
	projectHandler *handlers.ProjectHandler,
	userHandler *handlers.UserHandler,
	uploadDir string,
	bodyLimit int,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Uploaded files are served as-is for download links
	appLogger.Info("Serving uploaded files", zap.String("path", uploadDir))
	app.Static("/uploads", uploadDir)

	// API routes
	apiv1 := app.Group("/api/v1")

	documents := apiv1.Group("/documents")
	documents.Post("/upload", docHandler.UploadDocument)
	documents.Get("", docHandler.ListDocuments)
	documents.Get("/:id", docHandler.GetDocument)
	documents.Delete("/:id", docHandler.DeleteDocument)
	documents.Get("/:id/insights", docHandler.GetDocumentInsights)
	documents.Post("/:id/summarize", docHandler.SummarizeDocument)
	documents.Post("/:id/translate", docHandler.TranslateDocument)

	projects := apiv1.Group("/projects")
	projects.Post("", projectHandler.CreateProject)
	projects.Get("", projectHandler.ListProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Get("/:id/members", projectHandler.ListMembers)
	projects.Post("/:id/members", projectHandler.AddMember)
	projects.Delete("/:id/members/:userID", projectHandler.RemoveMember)
	projects.Post("/:id/summarize", projectHandler.SummarizeProject)

	users := apiv1.Group("/users")
	users.Post("", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)

	return app
}
