package shared

import (
	"bytes"
	"encoding/json"
)

// Optional carries the three states of a PATCH-style field: not provided
// (leave unchanged), explicitly null (clear) and a value (replace).
// The zero value is "not provided".
type Optional[T any] struct {
	set   bool
	value *T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: &v}
}

// Null returns an Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field was provided at all, null included.
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was provided as an explicit null.
func (o Optional[T]) IsNull() bool { return o.set && o.value == nil }

// Get returns the value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	if o.value == nil {
		var zero T
		return zero, false
	}
	return *o.value, true
}

// Apply resolves the field against its current nullable value.
func (o Optional[T]) Apply(current *T) *T {
	if !o.set {
		return current
	}
	if o.value == nil {
		return nil
	}
	v := *o.value
	return &v
}

// UnmarshalJSON is only invoked when the key is present, which is what
// separates "absent" from "null".
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

// MarshalJSON writes null for both unset and null fields.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.value)
}
