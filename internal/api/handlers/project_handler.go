package handlers

import (
	"time"

	"github.com/Pramod3245/Doc-agents/internal/dto"
	"github.com/Pramod3245/Doc-agents/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	summaryService *service.SummaryService
	logger         *zap.Logger
}

func NewProjectHandler(
	projectService *service.ProjectService,
	summaryService *service.SummaryService,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.OwnerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name and owner_id are required",
		})
	}

	project, err := h.projectService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create project")
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject godoc
// @Summary Get a project with its members and documents
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	project, err := h.projectService.Get(c.Context(), projectID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get project")
	}

	return c.JSON(project)
}

// ListProjects godoc
// @Summary List projects a user owns or belongs to
// @Tags projects
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} dto.ProjectResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid user_id is required",
		})
	}

	projects, err := h.projectService.ListByUser(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list projects")
	}

	return c.JSON(projects)
}

// ListMembers godoc
// @Summary List the members of a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} string
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id}/members [get]
func (h *ProjectHandler) ListMembers(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	members, err := h.projectService.ListMembers(c.Context(), projectID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list members")
	}

	return c.JSON(members)
}

// AddMember godoc
// @Summary Add a member to a project
// @Description Only the project owner may add members; adding an existing member is a no-op
// @Tags projects
// @Accept json
// @Param id path string true "Project ID"
// @Param request body dto.AddMemberRequest true "Member and acting user"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid user_id is required",
		})
	}
	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid actor_id is required",
		})
	}

	if err := h.projectService.AddMember(c.Context(), projectID, actorID, userID); err != nil {
		return respondError(c, h.logger, err, "Failed to add member")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember godoc
// @Summary Remove a member from a project
// @Description Only the project owner may remove members
// @Tags projects
// @Param id path string true "Project ID"
// @Param userID path string true "User ID"
// @Param actor_id query string true "Acting user ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id}/members/{userID} [delete]
func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}
	userID, err := uuid.Parse(c.Params("userID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	actorID, err := uuid.Parse(c.Query("actor_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid actor_id is required",
		})
	}

	if err := h.projectService.RemoveMember(c.Context(), projectID, actorID, userID); err != nil {
		return respondError(c, h.logger, err, "Failed to remove member")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SummarizeProject godoc
// @Summary Summarize every document in a project
// @Description Runs the pipeline over all project documents and condenses the results into one digest
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectSummaryResponse
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/projects/{id}/summarize [post]
func (h *ProjectHandler) SummarizeProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	result, err := h.summaryService.SummarizeProject(c.Context(), projectID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to summarize project")
	}

	resp := dto.ProjectSummaryResponse{
		ProjectID:   result.ProjectID.String(),
		Attempted:   result.Attempted,
		Succeeded:   result.Succeeded,
		Failed:      result.Failed,
		Summary:     result.Summary,
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
	}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, dto.DocumentFailureResponse{
			DocumentID: failure.DocumentID.String(),
			Title:      failure.Title,
			State:      string(failure.State),
			Reason:     failure.Reason,
		})
	}

	return c.JSON(resp)
}
