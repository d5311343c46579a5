package domain

import (
	"strings"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/pkg/validation"
)

// Tag labels tasks of one workspace. Names are unique per workspace ignoring
// case; NameKey holds the folded form the uniqueness check compares.
type Tag struct {
	ID          shared.TagID       `json:"id" gorm:"primaryKey"`
	WorkspaceID shared.WorkspaceID `json:"workspace_id" gorm:"not null;uniqueIndex:idx_tags_workspace_name"`
	Name        string             `json:"name" gorm:"not null"`
	NameKey     string             `json:"-" gorm:"not null;uniqueIndex:idx_tags_workspace_name"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// NewTag returns a tag with a trimmed, validated name.
func NewTag(id shared.TagID, workspaceID shared.WorkspaceID, name string, now time.Time) (Tag, error) {
	clean, err := validName(name)
	if err != nil {
		return Tag{}, err
	}
	now = now.UTC()
	return Tag{ID: id, WorkspaceID: workspaceID, Name: clean, NameKey: Key(clean), CreatedAt: now, UpdatedAt: now}, nil
}

// Rename returns t with a new name.
func Rename(t Tag, name string, now time.Time) (Tag, error) {
	clean, err := validName(name)
	if err != nil {
		return Tag{}, err
	}
	t.Name = clean
	t.NameKey = Key(clean)
	t.UpdatedAt = now.UTC()
	return t, nil
}

// Key folds a tag name for case-insensitive comparison.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validName(name string) (string, error) {
	if !validation.Name(name) {
		return "", shared.NewValidationError("name", "name must be 1 to 100 characters")
	}
	return strings.TrimSpace(name), nil
}
