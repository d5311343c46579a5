package delivery

import (
	"net/http"
	"time"

	authdelivery "taskflow-backend/internal/auth/delivery"
	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/task/domain"
	"taskflow-backend/internal/task/usecase"
	"taskflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title     string            `json:"title"`
	Notes     *string           `json:"notes"`
	ProjectID *shared.ProjectID `json:"project_id"`
	DueAt     *time.Time        `json:"due_at"`
	TagIDs    shared.TagIDs     `json:"tag_ids"`
}

// UpdateTaskRequest is a tri-state patch: an absent key leaves the field
// alone, null clears it and a value replaces it.
type UpdateTaskRequest struct {
	Title     shared.Optional[string]           `json:"title"`
	Notes     shared.Optional[string]           `json:"notes"`
	ProjectID shared.Optional[shared.ProjectID] `json:"project_id"`
	DueAt     shared.Optional[time.Time]        `json:"due_at"`
	TagIDs    shared.Optional[shared.TagIDs]    `json:"tag_ids"`
}

// GetTasks returns the caller's tasks for a view
// GET /api/tasks?view=today&status=active&project_id=...
func (h *TaskHandler) GetTasks(c *gin.Context) {
	query := usecase.ListQuery{View: usecase.View(c.Query("view"))}
	if status := c.Query("status"); status != "" {
		s := domain.Status(status)
		query.Status = &s
	}
	if projectID := c.Query("project_id"); projectID != "" {
		p := shared.ProjectID(projectID)
		query.ProjectID = &p
	}

	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), authdelivery.CurrentActor(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// SearchTasks ranks tasks by fuzzy title/notes match
// GET /api/tasks/search?q=...
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	tasks, err := h.taskUsecase.SearchTasks(c.Request.Context(), authdelivery.CurrentActor(c), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskUsecase.GetTask(c.Request.Context(), authdelivery.CurrentActor(c), domain.TaskID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), authdelivery.CurrentActor(c), usecase.CreateTaskInput{
		Title:     req.Title,
		Notes:     req.Notes,
		ProjectID: req.ProjectID,
		DueAt:     req.DueAt,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update
// PATCH /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), authdelivery.CurrentActor(c), domain.TaskID(c.Param("id")), domain.UpdateParams{
		Title:     req.Title,
		Notes:     req.Notes,
		ProjectID: req.ProjectID,
		DueAt:     req.DueAt,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CompleteTask completes a task; the body carries the spawned occurrence of a
// recurring task under "next"
// POST /api/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	completion, err := h.taskUsecase.CompleteTask(c.Request.Context(), authdelivery.CurrentActor(c), domain.TaskID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, completion)
}

// UncompleteTask reopens a completed task
// POST /api/tasks/:id/uncomplete
func (h *TaskHandler) UncompleteTask(c *gin.Context) {
	task, err := h.taskUsecase.UncompleteTask(c.Request.Context(), authdelivery.CurrentActor(c), domain.TaskID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CancelTask cancels a task
// POST /api/tasks/:id/cancel
func (h *TaskHandler) CancelTask(c *gin.Context) {
	task, err := h.taskUsecase.CancelTask(c.Request.Context(), authdelivery.CurrentActor(c), domain.TaskID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask soft-deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskUsecase.DeleteTask(c.Request.Context(), authdelivery.CurrentActor(c), domain.TaskID(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
