package delivery

import (
	"math"
	"net/http"

	authdelivery "taskflow-backend/internal/auth/delivery"
	"taskflow-backend/internal/recurrence/domain"
	"taskflow-backend/internal/recurrence/usecase"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
	"taskflow-backend/pkg/response"
	"taskflow-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// RecurrenceHandler serves the recurrence rule of a task
type RecurrenceHandler struct {
	recurrenceUsecase usecase.RecurrenceUsecase
}

// NewRecurrenceHandler creates a new RecurrenceHandler
func NewRecurrenceHandler(recurrenceUsecase usecase.RecurrenceUsecase) *RecurrenceHandler {
	return &RecurrenceHandler{recurrenceUsecase: recurrenceUsecase}
}

// SetRecurrenceRuleRequest is the body of PUT /api/tasks/:id/recurrence.
// Numbers arrive as JSON numbers and must be whole.
type SetRecurrenceRuleRequest struct {
	Frequency  string    `json:"frequency"`
	Interval   *float64  `json:"interval"`
	DaysOfWeek []float64 `json:"days_of_week"`
	DayOfMonth *float64  `json:"day_of_month"`
	Mode       *string   `json:"mode"`
}

// toParams rejects fractional and out-of-range numbers before they reach the
// rule constructor.
func (r SetRecurrenceRuleRequest) toParams() (domain.RuleParams, error) {
	params := domain.RuleParams{Frequency: domain.Frequency(r.Frequency)}

	if r.Interval != nil {
		if !validation.IntegerInRange(*r.Interval, 1, math.MaxInt32) {
			return params, shared.NewValidationError("interval", "interval must be a positive integer")
		}
		interval := int(*r.Interval)
		params.Interval = &interval
	}
	if r.DaysOfWeek != nil {
		params.DaysOfWeek = make([]int, 0, len(r.DaysOfWeek))
		for _, d := range r.DaysOfWeek {
			if !validation.IntegerInRange(d, 0, 6) {
				return params, shared.NewValidationError("daysOfWeek", "daysOfWeek entries must be integers between 0 and 6")
			}
			params.DaysOfWeek = append(params.DaysOfWeek, int(d))
		}
	}
	if r.DayOfMonth != nil {
		if !validation.IntegerInRange(*r.DayOfMonth, 1, 31) {
			return params, shared.NewValidationError("dayOfMonth", "dayOfMonth must be an integer between 1 and 31")
		}
		day := int(*r.DayOfMonth)
		params.DayOfMonth = &day
	}
	if r.Mode != nil {
		mode := domain.Mode(*r.Mode)
		params.Mode = &mode
	}
	return params, nil
}

// GetRule returns the task's recurrence rule
// GET /api/tasks/:id/recurrence
func (h *RecurrenceHandler) GetRule(c *gin.Context) {
	rule, err := h.recurrenceUsecase.GetRule(c.Request.Context(), authdelivery.CurrentActor(c), taskdomain.TaskID(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// SetRule replaces the task's recurrence rule
// PUT /api/tasks/:id/recurrence
func (h *RecurrenceHandler) SetRule(c *gin.Context) {
	var req SetRecurrenceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	params, err := req.toParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	rule, err := h.recurrenceUsecase.SetRule(c.Request.Context(), authdelivery.CurrentActor(c), usecase.SetRecurrenceRuleCommand{
		TaskID: taskdomain.TaskID(c.Param("id")),
		Params: params,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

// RemoveRule stops the task from recurring
// DELETE /api/tasks/:id/recurrence
func (h *RecurrenceHandler) RemoveRule(c *gin.Context) {
	if err := h.recurrenceUsecase.RemoveRule(c.Request.Context(), authdelivery.CurrentActor(c), taskdomain.TaskID(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
