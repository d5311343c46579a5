package domain

import (
	"strings"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/pkg/validation"
)

// Project groups tasks of one workspace. Tasks point at a project by id.
type Project struct {
	ID          shared.ProjectID   `json:"id" gorm:"primaryKey"`
	WorkspaceID shared.WorkspaceID `json:"workspace_id" gorm:"index;not null"`
	Name        string             `json:"name" gorm:"not null"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// NewProject returns a project with a trimmed, validated name.
func NewProject(id shared.ProjectID, workspaceID shared.WorkspaceID, name string, now time.Time) (Project, error) {
	clean, err := validName(name)
	if err != nil {
		return Project{}, err
	}
	now = now.UTC()
	return Project{ID: id, WorkspaceID: workspaceID, Name: clean, CreatedAt: now, UpdatedAt: now}, nil
}

// Rename returns p with a new name.
func Rename(p Project, name string, now time.Time) (Project, error) {
	clean, err := validName(name)
	if err != nil {
		return Project{}, err
	}
	p.Name = clean
	p.UpdatedAt = now.UTC()
	return p, nil
}

func validName(name string) (string, error) {
	if !validation.Name(name) {
		return "", shared.NewValidationError("name", "name must be 1 to 100 characters")
	}
	return strings.TrimSpace(name), nil
}
