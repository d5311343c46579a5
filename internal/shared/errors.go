package shared

import "fmt"

// ValidationError reports malformed input to a constructor or field update.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStateTransitionError reports a transition the entity's state machine
// forbids. From and To are the raw status names.
type InvalidStateTransitionError struct {
	Entity  string `json:"entity"`
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

func (e *InvalidStateTransitionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.From, e.To)
}

// NewTransitionError returns an *InvalidStateTransitionError.
func NewTransitionError(entity, from, to, message string) error {
	return &InvalidStateTransitionError{Entity: entity, From: from, To: to, Message: message}
}

// NotFoundError is raised by use cases when a referenced entity is missing or
// not visible to the caller.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError returns a *NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate tag name.
type ConflictError struct {
	Entity  string `json:"entity"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError returns a *ConflictError.
func NewConflictError(entity, field, message string) error {
	return &ConflictError{Entity: entity, Field: field, Message: message}
}
