package shared

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Identifiers of entities referenced across packages. Each is a distinct type
// so that, say, a ProjectID cannot be passed where a TagID is expected.
type (
	UserID           string
	WorkspaceID      string
	ProjectID        string
	TagID            string
	RecurrenceRuleID string
)

// TagIDs is an ordered set of tag references stored as a JSON array column.
type TagIDs []TagID

// Value implements driver.Valuer
func (a TagIDs) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *TagIDs) Scan(value interface{}) error {
	if value == nil {
		*a = TagIDs{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tag id column type %T", value)
	}
	if len(raw) == 0 {
		*a = TagIDs{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// Normalize drops duplicates keeping first-seen order and always returns a
// fresh slice.
func (a TagIDs) Normalize() TagIDs {
	out := make(TagIDs, 0, len(a))
	seen := make(map[TagID]struct{}, len(a))
	for _, id := range a {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Contains reports whether id is in the set.
func (a TagIDs) Contains(id TagID) bool {
	for _, existing := range a {
		if existing == id {
			return true
		}
	}
	return false
}

// Without returns a copy of a with id removed.
func (a TagIDs) Without(id TagID) TagIDs {
	out := make(TagIDs, 0, len(a))
	for _, existing := range a {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// Actor is the authenticated caller a command runs on behalf of.
type Actor struct {
	UserID      UserID
	WorkspaceID WorkspaceID
}
