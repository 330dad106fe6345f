package task

import (
	"fmt"
	"time"
)

// Urgency is derived from a record's deadline at render time. It is never stored.
type Urgency int

const (
	InTime Urgency = iota
	DueToday
	Overdue
)

func (u Urgency) Marker() Marker {
	switch u {
	case Overdue:
		return Marker{Letter: "O", Color: "9"}
	case DueToday:
		return Marker{Letter: "T", Color: "11"}
	default:
		return Marker{Letter: "I", Color: "10"}
	}
}

func (u Urgency) String() string {
	switch u {
	case Overdue:
		return "overdue"
	case DueToday:
		return "today"
	default:
		return "in time"
	}
}

// Deadline interprets canonical date and time strings as a UTC instant.
// Anything not already in YYYY-MM-DD and HH:MM form is rejected.
func Deadline(date, clock string) (time.Time, error) {
	if d, err := ParseDate(date); err != nil || d != date {
		return time.Time{}, fmt.Errorf("%w: %q is not canonical", ErrInvalidDate, date)
	}
	if t, err := ParseTime(clock); err != nil || t != clock {
		return time.Time{}, fmt.Errorf("%w: %q is not canonical", ErrInvalidTime, clock)
	}
	deadline, err := time.Parse("2006-01-02T15:04", date+"T"+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return deadline.UTC(), nil
}

// Classify compares the deadline with now. A deadline strictly before now is
// overdue, one on the same UTC calendar day is due today.
func Classify(date, clock string, now time.Time) (Urgency, error) {
	deadline, err := Deadline(date, clock)
	if err != nil {
		return InTime, err
	}
	now = now.UTC()
	if deadline.Before(now) {
		return Overdue, nil
	}
	dy, dm, dd := deadline.Date()
	ny, nm, nd := now.Date()
	if dy == ny && dm == nm && dd == nd {
		return DueToday, nil
	}
	return InTime, nil
}

// Urgency classifies the record against now. Records built by NewRecord
// always carry a parseable deadline.
func (r Record) Urgency(now time.Time) Urgency {
	u, _ := Classify(r.Date, r.Time, now)
	return u
}
