package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow-backend/internal/events"
	"taskflow-backend/internal/project/domain"
	"taskflow-backend/internal/project/repository"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
	taskrepo "taskflow-backend/internal/task/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	alice = shared.Actor{UserID: "alice", WorkspaceID: "alice"}
	eve   = shared.Actor{UserID: "eve", WorkspaceID: "eve"}
	now   = time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
)

type recorder struct{ events []events.Event }

func (r *recorder) Publish(_ context.Context, e events.Event) { r.events = append(r.events, e) }

func setup(t *testing.T) (ProjectUsecase, taskrepo.TaskRepository, *recorder) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Project{}, &taskdomain.Task{}))

	tasks := taskrepo.NewGormTaskRepository(db)
	rec := &recorder{}
	clock := shared.ClockFunc(func() time.Time { return now })
	return NewProjectUsecase(repository.NewGormProjectRepository(db), tasks, rec, clock), tasks, rec
}

func TestCreateAndRenameProject(t *testing.T) {
	uc, _, rec := setup(t)
	ctx := context.Background()

	project, err := uc.CreateProject(ctx, alice, " Garden ")
	require.NoError(t, err)
	assert.Equal(t, "Garden", project.Name)
	assert.Equal(t, alice.WorkspaceID, project.WorkspaceID)
	assert.NotEmpty(t, project.ID)

	_, err = uc.CreateProject(ctx, alice, "  ")
	var verr *shared.ValidationError
	assert.True(t, errors.As(err, &verr))

	renamed, err := uc.RenameProject(ctx, alice, project.ID, "Allotment")
	require.NoError(t, err)
	assert.Equal(t, "Allotment", renamed.Name)

	_, err = uc.RenameProject(ctx, eve, project.ID, "Mine now")
	var nf *shared.NotFoundError
	assert.True(t, errors.As(err, &nf))

	list, err := uc.ListProjects(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Allotment", list[0].Name)

	list, err = uc.ListProjects(ctx, eve)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, rec.events, 2)
	assert.Equal(t, events.ProjectCreated, rec.events[0].Type)
	assert.Equal(t, events.ProjectRenamed, rec.events[1].Type)
}

func TestDeleteProjectDetachesTasks(t *testing.T) {
	uc, tasks, rec := setup(t)
	ctx := context.Background()

	project, err := uc.CreateProject(ctx, alice, "Garden")
	require.NoError(t, err)

	task, err := taskdomain.CreateTask(taskdomain.CreateParams{
		ID: "t1", Title: "Weed", OwnerUserID: alice.UserID, WorkspaceID: alice.WorkspaceID, ProjectID: &project.ID,
	}, now)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, &task))

	exists, err := uc.ProjectExists(ctx, alice.WorkspaceID, project.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = uc.DeleteProject(ctx, eve, project.ID)
	var nf *shared.NotFoundError
	require.True(t, errors.As(err, &nf))

	require.NoError(t, uc.DeleteProject(ctx, alice, project.ID))

	stored, err := tasks.FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, stored.ProjectID)

	exists, err = uc.ProjectExists(ctx, alice.WorkspaceID, project.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, events.ProjectDeleted, last.Type)
	assert.Equal(t, "1", last.Related["detached_tasks"])

	err = uc.DeleteProject(ctx, alice, project.ID)
	assert.True(t, errors.As(err, &nf))
}
