package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field names an editable part of a record.
type Field string

const (
	FieldPriority Field = "priority"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldBody     Field = "task"
)

// Fields lists the edit selectors in prompt order.
func Fields() []Field {
	return []Field{FieldPriority, FieldDate, FieldTime, FieldBody}
}

// ParseDate accepts year-month-day integers and returns YYYY-MM-DD.
// Years outside 0..9999 are rejected so the canonical form stays four digits.
func ParseDate(raw string) (string, error) {
	parts, ok := splitInts(raw, "-", 3)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	year, month, day := parts[0], parts[1], parts[2]
	if year < 0 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// ParseTime accepts hour:minute integers and returns HH:MM.
func ParseTime(raw string) (string, error) {
	parts, ok := splitInts(raw, ":", 2)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	hour, minute := parts[0], parts[1]
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParsePriority matches a single letter code, ignoring case.
func ParsePriority(raw string) (Marker, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	for _, m := range Priorities() {
		if m.Letter == code {
			return m, nil
		}
	}
	return Marker{}, fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

// ParseField matches one of the edit selectors after trimming whitespace.
func ParseField(raw string) (Field, error) {
	name := Field(strings.TrimSpace(raw))
	for _, f := range Fields() {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, raw)
}

func splitInts(raw, sep string, n int) ([]int, bool) {
	tokens := strings.Split(strings.TrimSpace(raw), sep)
	if len(tokens) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
