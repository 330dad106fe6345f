package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidField    = errors.New("invalid field")
	ErrOutOfRange      = errors.New("task number out of range")
	ErrEmptyBody       = errors.New("task body is empty")
)

// Marker is the display form of a priority or urgency: a one-letter code and
// the ANSI 256 colour index it is highlighted with.
type Marker struct {
	Letter string
	Color  string
}

func (m Marker) String() string {
	return m.Letter
}

var (
	Critical = Marker{Letter: "C", Color: "9"}
	High     = Marker{Letter: "H", Color: "11"}
	Normal   = Marker{Letter: "N", Color: "10"}
	Low      = Marker{Letter: "L", Color: "12"}
)

// Priorities lists the priority markers in descending order.
func Priorities() []Marker {
	return []Marker{Critical, High, Normal, Low}
}

// Record is a single task. Build it with NewRecord or an Entry so that the
// canonical date/time form and the non-empty body hold.
type Record struct {
	Date     string
	Time     string
	Priority Marker
	Body     []string
}

// NewRecord validates every field and returns a record in canonical form.
func NewRecord(date, clock string, priority Marker, body []string) (Record, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Record{}, err
	}
	t, err := ParseTime(clock)
	if err != nil {
		return Record{}, err
	}
	p, err := ParsePriority(priority.Letter)
	if err != nil {
		return Record{}, err
	}
	lines := make([]string, 0, len(body))
	for _, line := range body {
		line = strings.TrimSpace(line)
		if line == "" {
			return Record{}, fmt.Errorf("%w: blank line in body", ErrEmptyBody)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return Record{}, ErrEmptyBody
	}
	return Record{Date: d, Time: t, Priority: p, Body: lines}, nil
}

func (r Record) clone() Record {
	r.Body = append([]string(nil), r.Body...)
	return r
}
