package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"taskflow-backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	p, err := NewProject("p1", "ws", "  Home  ", now)
	require.NoError(t, err)
	assert.Equal(t, "Home", p.Name)
	assert.Equal(t, time.UTC, p.CreatedAt.Location())

	for _, name := range []string{"", "   ", strings.Repeat("x", 101)} {
		_, err := NewProject("p1", "ws", name, now)
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr), "name %q", name)
		assert.Equal(t, "name", verr.Field)
	}
}

func TestRename(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p, err := NewProject("p1", "ws", "Home", created)
	require.NoError(t, err)

	renamed, err := Rename(p, " Work ", created.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Work", renamed.Name)
	assert.Equal(t, created, renamed.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), renamed.UpdatedAt)

	_, err = Rename(p, "", created)
	assert.Error(t, err)
	assert.Equal(t, "Home", p.Name)
}
