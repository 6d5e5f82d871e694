package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Pramod3245/Doc-agents/internal/dto"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/repository"
	"github.com/Pramod3245/Doc-agents/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type DocumentService struct {
	docRepo     *repository.DocumentRepository
	projectRepo *repository.ProjectRepository
	store       storage.Store
	logger      *zap.Logger
}

func NewDocumentService(
	docRepo *repository.DocumentRepository,
	projectRepo *repository.ProjectRepository,
	store storage.Store,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		store:       store,
		logger:      logger,
	}
}

// Upload stores the file and creates the document record. Any file type
// is accepted; unsupported formats surface when summarization is asked
// for, not here.
func (s *DocumentService) Upload(ctx context.Context, ownerID uuid.UUID, projectID *uuid.UUID, title string, file io.Reader, fileName string) (*dto.DocumentResponse, error) {
	if projectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *projectID); err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
	}

	fileName = filepath.Base(fileName)
	if title == "" {
		title = fileName
	}

	docID := uuid.New()
	rel := fmt.Sprintf("%s/%d_%s%s", ownerID, time.Now().UnixNano(), docID, filepath.Ext(fileName))

	size, err := s.store.Save(ctx, rel, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	doc := &models.Document{
		ID:         docID,
		Title:      title,
		FilePath:   rel,
		OwnerID:    ownerID,
		ProjectID:  projectID,
		UploadedAt: time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if rmErr := s.store.Remove(ctx, rel); rmErr != nil {
			s.logger.Warn("Failed to remove orphaned file", zap.String("path", rel), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	s.logger.Info("Document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("title", doc.Title),
		zap.Int64("size", size),
	)

	return toDocumentResponse(doc), nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func (s *DocumentService) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]dto.DocumentResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	docs, err := s.docRepo.ListByOwnerID(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return toDocumentResponses(docs), nil
}

func (s *DocumentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]dto.DocumentResponse, error) {
	docs, err := s.docRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return toDocumentResponses(docs), nil
}

// Delete removes the record first and the stored file after; a file that
// could not be removed is logged and left behind rather than resurrecting
// the record.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, doc.ID); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, doc.FilePath); err != nil {
		s.logger.Warn("Failed to remove stored file", zap.String("path", doc.FilePath), zap.Error(err))
	}

	s.logger.Info("Document deleted", zap.String("document_id", doc.ID.String()))
	return nil
}

func toDocumentResponse(doc *models.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:         doc.ID.String(),
		Title:      doc.Title,
		FilePath:   doc.FilePath,
		OwnerID:    doc.OwnerID.String(),
		UploadedAt: doc.UploadedAt.Format(time.RFC3339),
	}
	if doc.ProjectID != nil {
		resp.ProjectID = doc.ProjectID.String()
	}
	return resp
}

func toDocumentResponses(docs []*models.Document) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, *toDocumentResponse(doc))
	}
	return out
}
