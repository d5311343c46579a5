// Package validation holds the bounded-string and numeric checks shared by
// every entity constructor. All functions are pure and report success as a
// bool; callers turn a false into a typed error naming the offending field.
package validation

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	TitleMaxLength    = 200
	NameMaxLength     = 100
	EmailMaxLength    = 254
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

// Title reports whether s, once trimmed, is between 1 and 200 characters.
func Title(s string) bool {
	return lengthBetween(strings.TrimSpace(s), 1, TitleMaxLength)
}

// Name reports whether s, once trimmed, is between 1 and 100 characters.
func Name(s string) bool {
	return lengthBetween(strings.TrimSpace(s), 1, NameMaxLength)
}

// Email performs a structural check only: one @, a non-empty local part and
// a dotted domain without whitespace.
func Email(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > EmailMaxLength {
		return false
	}
	if strings.Count(s, "@") != 1 || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.Index(s, "@")
	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Password requires 8..128 characters with at least one letter and one digit.
func Password(s string) bool {
	if !lengthBetween(s, PasswordMinLength, PasswordMaxLength) {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// IntInRange reports whether min <= v <= max.
func IntInRange(v, min, max int) bool {
	return v >= min && v <= max
}

// IntegerInRange is IntInRange for numbers that arrive as JSON floats: a
// value with a fractional part is never an integer, whatever its range.
func IntegerInRange(v float64, min, max int) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return false
	}
	return v >= float64(min) && v <= float64(max)
}

// TrimToNil trims s and returns nil when nothing is left.
func TrimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
