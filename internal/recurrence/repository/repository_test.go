package repository

import (
	"context"
	"testing"
	"time"

	"taskflow-backend/internal/recurrence/domain"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var now = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&taskdomain.Task{}, &domain.Rule{}))
	return db
}

func seedTask(t *testing.T, db *gorm.DB) taskdomain.Task {
	task, err := taskdomain.CreateTask(taskdomain.CreateParams{
		ID: "t1", Title: "Water plants", OwnerUserID: "u1", WorkspaceID: "w1",
	}, now)
	require.NoError(t, err)
	require.NoError(t, db.Create(&task).Error)
	return task
}

func weekly(t *testing.T, id shared.RecurrenceRuleID, days ...int) domain.Rule {
	rule, err := domain.CreateRule(id, domain.RuleParams{Frequency: domain.FrequencyWeekly, DaysOfWeek: days}, now)
	require.NoError(t, err)
	return rule
}

func TestGormRuleRepository_ReplaceThenRemove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRuleRepository(db)
	ctx := context.Background()
	task := seedTask(t, db)

	first := weekly(t, "r1", 5, 1)
	require.NoError(t, repo.Apply(ctx, domain.PlanReplace(task, first, now)))

	stored, err := repo.FindByID(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.Weekdays{1, 5}, stored.DaysOfWeek)
	assert.Nil(t, stored.DayOfMonth)

	var reloaded taskdomain.Task
	require.NoError(t, db.First(&reloaded, "id = ?", "t1").Error)
	require.NotNil(t, reloaded.RecurrenceRuleID)
	assert.Equal(t, shared.RecurrenceRuleID("r1"), *reloaded.RecurrenceRuleID)

	second := weekly(t, "r2", 3)
	require.NoError(t, repo.Apply(ctx, domain.PlanReplace(reloaded, second, now.Add(time.Minute))))

	gone, err := repo.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, db.First(&reloaded, "id = ?", "t1").Error)
	assert.Equal(t, shared.RecurrenceRuleID("r2"), *reloaded.RecurrenceRuleID)

	change, ok := domain.PlanRemove(reloaded, now.Add(2*time.Minute))
	require.True(t, ok)
	require.NoError(t, repo.Apply(ctx, change))

	require.NoError(t, db.First(&reloaded, "id = ?", "t1").Error)
	assert.Nil(t, reloaded.RecurrenceRuleID)
	assert.True(t, reloaded.UpdatedAt.Equal(now.Add(2*time.Minute)))
	gone, err = repo.FindByID(ctx, "r2")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGormRuleRepository_ApplyIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRuleRepository(db)
	ctx := context.Background()
	task := seedTask(t, db)

	first := weekly(t, "r1", 1)
	require.NoError(t, repo.Apply(ctx, domain.PlanReplace(task, first, now)))

	// The task update fails, so the rule insert before it must roll back.
	require.NoError(t, db.Migrator().DropTable(&taskdomain.Task{}))
	err := repo.Apply(ctx, domain.PlanReplace(task, weekly(t, "r2", 2), now))
	assert.Error(t, err)

	missing, err := repo.FindByID(ctx, "r2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
