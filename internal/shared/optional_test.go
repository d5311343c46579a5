package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Notes Optional[string] `json:"notes"`
}

func TestOptional_UnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var absent, null, value patchBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"notes":"hello"}`), &value))

	assert.False(t, absent.Notes.IsSet())
	assert.True(t, null.Notes.IsSet())
	assert.True(t, null.Notes.IsNull())
	got, ok := value.Notes.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestOptional_Apply(t *testing.T) {
	current := "old"

	var unset Optional[string]
	assert.Same(t, &current, unset.Apply(&current))
	assert.Nil(t, Null[string]().Apply(&current))

	replaced := Some("new").Apply(&current)
	require.NotNil(t, replaced)
	assert.Equal(t, "new", *replaced)
	assert.Equal(t, "old", current)
}

func TestTagIDs_NormalizeAndScan(t *testing.T) {
	ids := TagIDs{"b", "a", "b", "c", "a"}
	assert.Equal(t, TagIDs{"b", "a", "c"}, ids.Normalize())
	assert.True(t, ids.Contains("c"))
	assert.Equal(t, TagIDs{"a", "c", "a"}, ids.Without("b"))

	v, err := TagIDs{"x", "y"}.Value()
	require.NoError(t, err)

	var scanned TagIDs
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, TagIDs{"x", "y"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}
