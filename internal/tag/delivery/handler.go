package delivery

import (
	"net/http"

	authdelivery "taskflow-backend/internal/auth/delivery"
	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/tag/domain"
	"taskflow-backend/internal/tag/usecase"
	"taskflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagUsecase usecase.TagUsecase
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagUsecase usecase.TagUsecase) *TagHandler {
	return &TagHandler{tagUsecase: tagUsecase}
}

// TagRequest is the body of tag create and rename calls
type TagRequest struct {
	Name string `json:"name"`
}

// ListTags returns the workspace's tags
// GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagUsecase.ListTags(c.Request.Context(), authdelivery.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag creates a tag
// POST /api/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	tag, err := h.tagUsecase.CreateTag(c.Request.Context(), authdelivery.CurrentActor(c), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// RenameTag renames a tag
// PATCH /api/tags/:id
func (h *TagHandler) RenameTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	tag, err := h.tagUsecase.RenameTag(c.Request.Context(), authdelivery.CurrentActor(c), shared.TagID(c.Param("id")), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag deletes a tag and strips it from tasks
// DELETE /api/tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tagUsecase.DeleteTag(c.Request.Context(), authdelivery.CurrentActor(c), shared.TagID(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
