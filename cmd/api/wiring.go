package api

import (
	authdomain "taskflow-backend/internal/auth/domain"
	authRepo "taskflow-backend/internal/auth/repository"
	authUsecase "taskflow-backend/internal/auth/usecase"
	"taskflow-backend/internal/events"
	projectdomain "taskflow-backend/internal/project/domain"
	projectRepo "taskflow-backend/internal/project/repository"
	projectUsecase "taskflow-backend/internal/project/usecase"
	recurrencedomain "taskflow-backend/internal/recurrence/domain"
	recurrenceRepo "taskflow-backend/internal/recurrence/repository"
	recurrenceUsecase "taskflow-backend/internal/recurrence/usecase"
	reminderdomain "taskflow-backend/internal/reminder/domain"
	reminderRepo "taskflow-backend/internal/reminder/repository"
	reminderUsecase "taskflow-backend/internal/reminder/usecase"
	"taskflow-backend/internal/shared"
	tagdomain "taskflow-backend/internal/tag/domain"
	tagRepo "taskflow-backend/internal/tag/repository"
	tagUsecase "taskflow-backend/internal/tag/usecase"
	taskdomain "taskflow-backend/internal/task/domain"
	taskRepo "taskflow-backend/internal/task/repository"
	taskUsecase "taskflow-backend/internal/task/usecase"
	"taskflow-backend/pkg/config"

	"gorm.io/gorm"
)

// Models lists every table the service auto-migrates
func Models() []interface{} {
	return []interface{}{
		&taskdomain.Task{},
		&recurrencedomain.Rule{},
		&reminderdomain.Reminder{},
		&projectdomain.Project{},
		&tagdomain.Tag{},
		&authdomain.FCMToken{},
	}
}

// NewUsecases builds the use case graph on db (dependency injection)
func NewUsecases(db *gorm.DB, cfg *config.Config, publisher events.Publisher, clock shared.Clock) Usecases {
	// Initialize repositories
	taskRepository := taskRepo.NewGormTaskRepository(db)
	ruleRepository := recurrenceRepo.NewGormRuleRepository(db)
	reminderRepository := reminderRepo.NewGormReminderRepository(db)
	projectRepository := projectRepo.NewGormProjectRepository(db)
	tagRepository := tagRepo.NewGormTagRepository(db)
	fcmTokenRepo := authRepo.NewFCMTokenRepository(db)

	// Initialize use cases
	taskUc := taskUsecase.NewTaskUsecase(taskRepository, ruleRepository, publisher, clock)
	projectUc := projectUsecase.NewProjectUsecase(projectRepository, taskRepository, publisher, clock)
	tagUc := tagUsecase.NewTagUsecase(tagRepository, taskRepository, publisher, clock)
	taskUc.SetReferenceLookups(projectUc, tagUc)

	return Usecases{
		Auth:       authUsecase.NewAuthUsecase(fcmTokenRepo, cfg, clock),
		Task:       taskUc,
		Recurrence: recurrenceUsecase.NewRecurrenceUsecase(taskUc, ruleRepository, publisher, clock),
		Reminder:   reminderUsecase.NewReminderUsecase(reminderRepository, taskRepository, publisher, clock),
		Project:    projectUc,
		Tag:        tagUc,
	}
}
