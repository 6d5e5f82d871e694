package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pramod3245/Doc-agents/internal/dto"
	"github.com/Pramod3245/Doc-agents/internal/models"
	"github.com/Pramod3245/Doc-agents/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotProjectOwner is returned when someone other than the project
// owner tries to manage its members.
var ErrNotProjectOwner = errors.New("only the project owner can manage members")

// ErrOwnerRemoval is returned when a removal targets the project owner,
// whose access does not depend on the member list.
var ErrOwnerRemoval = errors.New("the project owner cannot be removed")

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	docRepo     *repository.DocumentRepository
	userRepo    *repository.UserRepository
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	docRepo *repository.DocumentRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}

	project := &models.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("name", project.Name),
	)

	return toProjectResponse(project, nil, nil), nil
}

// Get returns the project together with its member list and documents.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.projectRepo.ListMemberIDs(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	docs, err := s.docRepo.ListByProjectID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return toProjectResponse(project, memberIDs, docs), nil
}

// ListByUser returns every project the user owns or is a member of.
func (s *ProjectService) ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		out = append(out, *toProjectResponse(project, nil, nil))
	}
	return out, nil
}

// ListMembers returns the ids of every user on the project's member
// list. The owner is implicit and not part of it.
func (s *ProjectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	memberIDs, err := s.projectRepo.ListMemberIDs(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	out := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		out = append(out, id.String())
	}
	return out, nil
}

// AddMember adds a user to the project. Only the owner may do this;
// adding an existing member is a no-op.
func (s *ProjectService) AddMember(ctx context.Context, projectID, actorID, userID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return ErrNotProjectOwner
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("user: %w", err)
	}

	if err := s.projectRepo.AddMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.logger.Info("Member added to project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// RemoveMember removes a user from the project. Only the owner may do
// this, and the owner themselves cannot be removed.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, actorID, userID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return ErrNotProjectOwner
	}
	if userID == project.OwnerID {
		return ErrOwnerRemoval
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return err
	}

	s.logger.Info("Member removed from project",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func toProjectResponse(project *models.Project, memberIDs []uuid.UUID, docs []*models.Document) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID.String(),
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
	}
	for _, id := range memberIDs {
		resp.MemberIDs = append(resp.MemberIDs, id.String())
	}
	if docs != nil {
		resp.Documents = toDocumentResponses(docs)
	}
	return resp
}
