package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagAndRename(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tag, err := NewTag("t1", "ws", "  Urgent ", now)
	require.NoError(t, err)
	assert.Equal(t, "Urgent", tag.Name)
	assert.Equal(t, "urgent", tag.NameKey)

	renamed, err := Rename(tag, "LATER", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "LATER", renamed.Name)
	assert.Equal(t, "later", renamed.NameKey)
	assert.Equal(t, now, renamed.CreatedAt)

	_, err = NewTag("t2", "ws", " ", now)
	assert.Error(t, err)
	_, err = Rename(tag, "", now)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("Home"), Key(" HOME "))
	assert.NotEqual(t, Key("home"), Key("homes"))
}
