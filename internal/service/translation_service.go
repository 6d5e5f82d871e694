package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pramod3245/Doc-agents/internal/dto"
	"github.com/Pramod3245/Doc-agents/internal/storage"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// translationWindowSize is how much text one translation prompt carries.
// Windows do not overlap; overlapping text would be translated twice.
const translationWindowSize = 4000

// Generator produces free-form text from a prompt. The GigaChat backend
// implements it; the other backends cannot translate.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type TranslationService struct {
	docRepo   DocumentSource
	store     storage.Store
	extractor TextExtractor
	generator Generator
	logger    *zap.Logger
}

// NewTranslationService wires document translation. A nil generator is
// allowed; translation then reports itself unavailable.
func NewTranslationService(
	docRepo DocumentSource,
	store storage.Store,
	textExtractor TextExtractor,
	generator Generator,
	logger *zap.Logger,
) *TranslationService {
	return &TranslationService{
		docRepo:   docRepo,
		store:     store,
		extractor: textExtractor,
		generator: generator,
		logger:    logger,
	}
}

// TranslateDocument extracts the document text and translates it chunk
// by chunk into the target language.
func (s *TranslationService) TranslateDocument(ctx context.Context, documentID uuid.UUID, targetLanguage string) (*dto.TranslationResponse, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("%w: translation requires the gigachat backend", summarizer.ErrUnavailable)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	f, err := s.store.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	defer f.Close()

	res, err := s.extractor.Extract(ctx, f, doc.FilePath)
	if err != nil {
		return nil, err
	}

	resp := &dto.TranslationResponse{
		DocumentID:     doc.ID.String(),
		TargetLanguage: targetLanguage,
	}
	if strings.TrimSpace(res.Text) == "" {
		return resp, nil
	}

	chunks := summarizer.SplitWindows(res.Text, translationWindowSize, 0)
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prompt := fmt.Sprintf(
			"Translate the following text to %s. Output only the translation, nothing else.\n\nText:\n%s",
			targetLanguage, chunk,
		)
		out, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	s.logger.Info("Document translated",
		zap.String("document_id", doc.ID.String()),
		zap.String("target_language", targetLanguage),
		zap.Int("chunks", len(chunks)),
	)

	resp.TranslatedText = strings.Join(parts, "\n\n")
	return resp, nil
}
