package handlers

import (
	"strings"
	"time"

	"github.com/Pramod3245/Doc-agents/internal/dto"
	"github.com/Pramod3245/Doc-agents/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService         *service.DocumentService
	summaryService     *service.SummaryService
	translationService *service.TranslationService
	logger             *zap.Logger
}

func NewDocumentHandler(
	docService *service.DocumentService,
	summaryService *service.SummaryService,
	translationService *service.TranslationService,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		docService:         docService,
		summaryService:     summaryService,
		translationService: translationService,
		logger:             logger,
	}
}

// UploadDocument godoc
// @Summary Upload a document
// @Description Upload a PDF, text or markdown file, optionally into a project
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param owner_id formData string true "Owner user ID"
// @Param project_id formData string false "Project ID"
// @Param title formData string false "Title, defaults to the file name"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/upload [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.FormValue("owner_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid owner_id is required",
		})
	}

	var projectID *uuid.UUID
	if v := c.FormValue("project_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid project_id",
			})
		}
		projectID = &id
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	doc, err := h.docService.Upload(c.Context(), ownerID, projectID, c.FormValue("title"), src, file.Filename)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to upload document")
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	doc, err := h.docService.Get(c.Context(), documentID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get document")
	}

	return c.JSON(doc)
}

// ListDocuments godoc
// @Summary List documents owned by a user
// @Tags documents
// @Produce json
// @Param owner_id query string true "Owner user ID"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.DocumentResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Query("owner_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid owner_id is required",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	docs, err := h.docService.ListByOwner(c.Context(), ownerID, limit, offset)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list documents")
	}

	return c.JSON(docs)
}

// DeleteDocument godoc
// @Summary Delete a document and its stored file
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	if err := h.docService.Delete(c.Context(), documentID); err != nil {
		return respondError(c, h.logger, err, "Failed to delete document")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SummarizeDocument godoc
// @Summary Summarize a document
// @Description Extract the document text and produce a summary with the configured backend
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/documents/{id}/summarize [post]
func (h *DocumentHandler) SummarizeDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	result, err := h.summaryService.SummarizeDocument(c.Context(), documentID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to summarize document")
	}

	return c.JSON(dto.SummaryResponse{
		DocumentID:  result.DocumentID.String(),
		Summary:     result.Summary,
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
	})
}

// GetDocumentInsights godoc
// @Summary Get document insights
// @Description Summary, extraction metadata and text statistics in one response
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentInsightsResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/{id}/insights [get]
func (h *DocumentHandler) GetDocumentInsights(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	insights, err := h.summaryService.DocumentInsights(c.Context(), documentID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to build document insights")
	}

	return c.JSON(dto.DocumentInsightsResponse{
		DocumentID: insights.DocumentID.String(),
		Summary:    insights.Summary,
		Metadata:   insights.Metadata,
		PageCount:  insights.PageCount,
		Statistics: dto.DocumentStatisticsResponse{
			Characters: insights.Statistics.Characters,
			Words:      insights.Statistics.Words,
			Lines:      insights.Statistics.Lines,
		},
	})
}

// TranslateDocument godoc
// @Summary Translate a document
// @Description Extract the document text and translate it into the target language
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.TranslateRequest true "Target language"
// @Success 200 {object} dto.TranslationResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/documents/{id}/translate [post]
func (h *DocumentHandler) TranslateDocument(c *fiber.Ctx) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID",
		})
	}

	var req dto.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.TargetLanguage) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "target_language is required",
		})
	}

	resp, err := h.translationService.TranslateDocument(c.Context(), documentID, strings.TrimSpace(req.TargetLanguage))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to translate document")
	}

	return c.JSON(resp)
}
