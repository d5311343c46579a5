package delivery

import (
	"net/http"

	authdelivery "taskflow-backend/internal/auth/delivery"
	"taskflow-backend/internal/project/domain"
	"taskflow-backend/internal/project/usecase"
	"taskflow-backend/internal/shared"
	"taskflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectUsecase usecase.ProjectUsecase
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectUsecase usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// ProjectRequest is the body of project create and rename calls
type ProjectRequest struct {
	Name string `json:"name"`
}

// ListProjects returns the workspace's projects
// GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectUsecase.ListProjects(c.Request.Context(), authdelivery.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateProject creates a project
// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	project, err := h.projectUsecase.CreateProject(c.Request.Context(), authdelivery.CurrentActor(c), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// RenameProject renames a project
// PATCH /api/projects/:id
func (h *ProjectHandler) RenameProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	project, err := h.projectUsecase.RenameProject(c.Request.Context(), authdelivery.CurrentActor(c), shared.ProjectID(c.Param("id")), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project and detaches its tasks
// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectUsecase.DeleteProject(c.Request.Context(), authdelivery.CurrentActor(c), shared.ProjectID(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
