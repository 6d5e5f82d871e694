package handlers

import (
	"errors"

	"github.com/Pramod3245/Doc-agents/internal/extractor"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/service"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, extractor.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, extractor.ErrExtractionFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, summarizer.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, summarizer.ErrFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUserExists):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotProjectOwner):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrOwnerRemoval):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the error as JSON. Unclassified errors are logged
// and their detail is hidden behind msg.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, msg string) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(msg, zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
