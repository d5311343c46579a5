package api

import (
	"net/http"

	"taskflow-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		protected := api.Group("")
		protected.Use(delivery.AuthMiddleware(h.authUsecase))

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.GET("/search", h.taskHandler.SearchTasks)
			tasks.GET("/:id", h.taskHandler.GetTaskByID)
			tasks.PATCH("/:id", h.taskHandler.UpdateTask)
			tasks.DELETE("/:id", h.taskHandler.DeleteTask)
			tasks.POST("/:id/complete", h.taskHandler.CompleteTask)
			tasks.POST("/:id/uncomplete", h.taskHandler.UncompleteTask)
			tasks.POST("/:id/cancel", h.taskHandler.CancelTask)

			tasks.GET("/:id/recurrence", h.recurrenceHandler.GetRule)
			tasks.PUT("/:id/recurrence", h.recurrenceHandler.SetRule)
			tasks.DELETE("/:id/recurrence", h.recurrenceHandler.RemoveRule)

			tasks.GET("/:id/reminders", h.reminderHandler.ListReminders)
			tasks.POST("/:id/reminders", h.reminderHandler.CreateReminder)
		}

		reminders := protected.Group("/reminders")
		{
			reminders.PATCH("/:id", h.reminderHandler.UpdateReminder)
			reminders.POST("/:id/dismiss", h.reminderHandler.DismissReminder)
			reminders.DELETE("/:id", h.reminderHandler.DeleteReminder)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("", h.projectHandler.ListProjects)
			projects.POST("", h.projectHandler.CreateProject)
			projects.PATCH("/:id", h.projectHandler.RenameProject)
			projects.DELETE("/:id", h.projectHandler.DeleteProject)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", h.tagHandler.ListTags)
			tags.POST("", h.tagHandler.CreateTag)
			tags.PATCH("/:id", h.tagHandler.RenameTag)
			tags.DELETE("/:id", h.tagHandler.DeleteTag)
		}

		devices := protected.Group("/devices")
		{
			devices.POST("", h.deviceHandler.RegisterDevice)
			devices.DELETE("/:token", h.deviceHandler.UnregisterDevice)
		}
	}
}
