package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/pkg/validation"
)

// Frequency is the calendar unit a rule repeats on.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Mode selects the anchor of the next occurrence.
type Mode string

const (
	// ModeFixedSchedule anchors on the previous due date.
	ModeFixedSchedule Mode = "fixed_schedule"
	// ModeFromCompletion anchors on the completion time.
	ModeFromCompletion Mode = "from_completion"
)

// Weekdays is an ascending set of weekday numbers, 0 = Sunday.
type Weekdays []int

// Value implements driver.Valuer
func (w Weekdays) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	b, err := json.Marshal([]int(w))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (w *Weekdays) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported weekdays column type %T", value)
	}
	if len(raw) == 0 {
		*w = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]int)(w))
}

// Rule describes how a recurring task repeats. A rule is owned by at most one
// task at a time, through Task.RecurrenceRuleID.
type Rule struct {
	ID         shared.RecurrenceRuleID `json:"id" gorm:"primaryKey"`
	Frequency  Frequency               `json:"frequency" gorm:"not null"`
	Interval   int                     `json:"interval" gorm:"not null;default:1"`
	DaysOfWeek Weekdays                `json:"days_of_week" gorm:"type:text"`
	DayOfMonth *int                    `json:"day_of_month"`
	Mode       Mode                    `json:"mode" gorm:"not null"`
	CreatedAt  time.Time               `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time               `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName keeps the table name stable regardless of the Go type name.
func (Rule) TableName() string { return "recurrence_rules" }

// RuleParams are the inputs of CreateRule. Nil fields take their defaults;
// a non-nil empty DaysOfWeek is an error rather than "no days".
type RuleParams struct {
	Frequency  Frequency
	Interval   *int
	DaysOfWeek []int
	DayOfMonth *int
	Mode       *Mode
}

// CreateRule validates p and returns a normalized rule.
func CreateRule(id shared.RecurrenceRuleID, p RuleParams, now time.Time) (Rule, error) {
	rule := Rule{
		ID:        id,
		Frequency: p.Frequency,
		Interval:  1,
		Mode:      ModeFixedSchedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Interval != nil {
		rule.Interval = *p.Interval
	}
	if p.Mode != nil {
		rule.Mode = *p.Mode
	}
	if p.DaysOfWeek != nil {
		if len(p.DaysOfWeek) == 0 {
			return Rule{}, shared.NewValidationError("daysOfWeek", "daysOfWeek must not be empty")
		}
		rule.DaysOfWeek = normalizeWeekdays(p.DaysOfWeek)
	}
	if p.DayOfMonth != nil {
		d := *p.DayOfMonth
		rule.DayOfMonth = &d
	}

	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

// Validate checks the invariants of a rule, including one read back from
// storage.
func (r Rule) Validate() error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return shared.NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", r.Frequency))
	}
	if r.Interval < 1 {
		return shared.NewValidationError("interval", "interval must be a positive integer")
	}
	if r.DaysOfWeek != nil {
		if len(r.DaysOfWeek) == 0 {
			return shared.NewValidationError("daysOfWeek", "daysOfWeek must not be empty")
		}
		for _, d := range r.DaysOfWeek {
			if !validation.IntInRange(d, 0, 6) {
				return shared.NewValidationError("daysOfWeek", "daysOfWeek entries must be between 0 and 6")
			}
		}
	}
	if r.DayOfMonth != nil && !validation.IntInRange(*r.DayOfMonth, 1, 31) {
		return shared.NewValidationError("dayOfMonth", "dayOfMonth must be between 1 and 31")
	}
	switch r.Mode {
	case ModeFixedSchedule, ModeFromCompletion:
	default:
		return shared.NewValidationError("mode", fmt.Sprintf("unknown mode %q", r.Mode))
	}
	return nil
}

func normalizeWeekdays(days []int) Weekdays {
	seen := make(map[int]struct{}, len(days))
	out := make(Weekdays, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
