package delivery

import (
	"net/http"
	"time"

	authdelivery "taskflow-backend/internal/auth/delivery"
	"taskflow-backend/internal/reminder/domain"
	"taskflow-backend/internal/reminder/usecase"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
	"taskflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReminderHandler handles reminder-related HTTP requests
type ReminderHandler struct {
	reminderUsecase usecase.ReminderUsecase
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderUsecase usecase.ReminderUsecase) *ReminderHandler {
	return &ReminderHandler{reminderUsecase: reminderUsecase}
}

// RemindAtRequest is the body of reminder create and reschedule calls
type RemindAtRequest struct {
	RemindAt *time.Time `json:"remind_at"`
}

func (h *ReminderHandler) bindRemindAt(c *gin.Context) (time.Time, bool) {
	var req RemindAtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return time.Time{}, false
	}
	if req.RemindAt == nil {
		response.Error(c, shared.NewValidationError("remindAt", "remind_at is required"))
		return time.Time{}, false
	}
	return *req.RemindAt, true
}

// ListReminders returns a task's reminders
// GET /api/tasks/:id/reminders
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	reminders, err := h.reminderUsecase.ListByTask(c.Request.Context(), authdelivery.CurrentActor(c), taskdomain.TaskID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if reminders == nil {
		reminders = []*domain.Reminder{}
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// CreateReminder schedules a reminder for a task
// POST /api/tasks/:id/reminders
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	remindAt, ok := h.bindRemindAt(c)
	if !ok {
		return
	}

	reminder, err := h.reminderUsecase.CreateReminder(c.Request.Context(), authdelivery.CurrentActor(c), usecase.CreateReminderCommand{
		TaskID:   taskdomain.TaskID(c.Param("id")),
		RemindAt: remindAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder reschedules a pending reminder
// PATCH /api/reminders/:id
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	remindAt, ok := h.bindRemindAt(c)
	if !ok {
		return
	}

	reminder, err := h.reminderUsecase.UpdateReminderTime(c.Request.Context(), authdelivery.CurrentActor(c), domain.ReminderID(c.Param("id")), remindAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// DismissReminder dismisses a reminder
// POST /api/reminders/:id/dismiss
func (h *ReminderHandler) DismissReminder(c *gin.Context) {
	reminder, err := h.reminderUsecase.DismissReminder(c.Request.Context(), authdelivery.CurrentActor(c), domain.ReminderID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder removes a reminder
// DELETE /api/reminders/:id
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	if err := h.reminderUsecase.DeleteReminder(c.Request.Context(), authdelivery.CurrentActor(c), domain.ReminderID(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
