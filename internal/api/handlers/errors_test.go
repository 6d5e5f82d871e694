package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Pramod3245/Doc-agents/internal/extractor"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/service"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"

	"github.com/gofiber/fiber/v2"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", models.ErrNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("document: %w", models.ErrNotFound), fiber.StatusNotFound},
		{"unsupported format", extractor.ErrUnsupportedFormat, fiber.StatusUnsupportedMediaType},
		{"file too large", extractor.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge},
		{"extraction failed", fmt.Errorf("%w: bad container", extractor.ErrExtractionFailed), fiber.StatusUnprocessableEntity},
		{"backend unavailable", summarizer.ErrUnavailable, fiber.StatusServiceUnavailable},
		{"backend failed", summarizer.ErrFailed, fiber.StatusUnprocessableEntity},
		{"duplicate user", service.ErrUserExists, fiber.StatusConflict},
		{"not project owner", service.ErrNotProjectOwner, fiber.StatusForbidden},
		{"owner removal", service.ErrOwnerRemoval, fiber.StatusConflict},
		{"unclassified", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := errorStatus(c.err); got != c.want {
			t.Errorf("%s: expected %d, got %d", c.name, c.want, got)
		}
	}
}
