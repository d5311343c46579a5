package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	authDelivery "taskflow-backend/internal/auth/delivery"
	authUsecase "taskflow-backend/internal/auth/usecase"
	projectDelivery "taskflow-backend/internal/project/delivery"
	projectUsecase "taskflow-backend/internal/project/usecase"
	recurrenceDelivery "taskflow-backend/internal/recurrence/delivery"
	recurrenceUsecase "taskflow-backend/internal/recurrence/usecase"
	reminderDelivery "taskflow-backend/internal/reminder/delivery"
	reminderUsecase "taskflow-backend/internal/reminder/usecase"
	tagDelivery "taskflow-backend/internal/tag/delivery"
	tagUsecase "taskflow-backend/internal/tag/usecase"
	taskDelivery "taskflow-backend/internal/task/delivery"
	taskUsecase "taskflow-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// Usecases groups everything the HTTP layer calls into
type Usecases struct {
	Auth       authUsecase.AuthUsecase
	Task       taskUsecase.TaskUsecase
	Recurrence recurrenceUsecase.RecurrenceUsecase
	Reminder   reminderUsecase.ReminderUsecase
	Project    projectUsecase.ProjectUsecase
	Tag        tagUsecase.TagUsecase
}

type Handler struct {
	authUsecase       authUsecase.AuthUsecase
	taskHandler       *taskDelivery.TaskHandler
	recurrenceHandler *recurrenceDelivery.RecurrenceHandler
	reminderHandler   *reminderDelivery.ReminderHandler
	projectHandler    *projectDelivery.ProjectHandler
	tagHandler        *tagDelivery.TagHandler
	deviceHandler     *authDelivery.DeviceHandler
	server            *http.Server
}

func NewHandler(uc Usecases) *Handler {
	return &Handler{
		authUsecase:       uc.Auth,
		taskHandler:       taskDelivery.NewTaskHandler(uc.Task),
		recurrenceHandler: recurrenceDelivery.NewRecurrenceHandler(uc.Recurrence),
		reminderHandler:   reminderDelivery.NewReminderHandler(uc.Reminder),
		projectHandler:    projectDelivery.NewProjectHandler(uc.Project),
		tagHandler:        tagDelivery.NewTagHandler(uc.Tag),
		deviceHandler:     authDelivery.NewDeviceHandler(uc.Auth),
	}
}

// Router builds the gin engine with every route mounted
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware())
	SetupRoutes(r, h)
	return r
}

// Start serves until Shutdown is called
func (h *Handler) Start(addr string) error {
	h.server = &http.Server{Addr: addr, Handler: h.Router()}

	log.Printf("[API] Server starting on %s", addr)
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (h *Handler) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
