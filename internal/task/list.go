package task

import (
	"fmt"
	"strconv"
	"strings"
)

// List is the ordered task collection. Positions taken and returned by its
// methods are 1-based. A List is not safe for concurrent use.
type List struct {
	records []Record
}

// NewList copies records so later edits do not leak back to the caller.
func NewList(records []Record) *List {
	l := &List{records: make([]Record, 0, len(records))}
	for _, r := range records {
		l.records = append(l.records, r.clone())
	}
	return l
}

// Len is the number of tasks, which is also the highest valid position.
func (l *List) Len() int {
	return len(l.records)
}

// Empty reports whether there is nothing to show, edit or delete.
func (l *List) Empty() bool {
	return len(l.records) == 0
}

// Records returns a copy of the records in order.
func (l *List) Records() []Record {
	out := make([]Record, len(l.records))
	for i, r := range l.records {
		out[i] = r.clone()
	}
	return out
}

// At returns a copy of the record at pos, or ErrOutOfRange.
func (l *List) At(pos int) (Record, error) {
	i, err := l.index(pos)
	if err != nil {
		return Record{}, err
	}
	return l.records[i].clone(), nil
}

// Add appends r as the last position.
func (l *List) Add(r Record) {
	l.records = append(l.records, r.clone())
}

// Position parses a user supplied task number and checks it against the list.
func (l *List) Position(raw string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, raw)
	}
	if _, err := l.index(pos); err != nil {
		return 0, err
	}
	return pos, nil
}

// Edit validates value for the given field and replaces that field in place.
// The body is replaced through ReplaceBody instead.
func (l *List) Edit(pos int, field Field, value string) error {
	i, err := l.index(pos)
	if err != nil {
		return err
	}
	switch field {
	case FieldPriority:
		p, err := ParsePriority(value)
		if err != nil {
			return err
		}
		l.records[i].Priority = p
	case FieldDate:
		d, err := ParseDate(value)
		if err != nil {
			return err
		}
		l.records[i].Date = d
	case FieldTime:
		t, err := ParseTime(value)
		if err != nil {
			return err
		}
		l.records[i].Time = t
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

// ReplaceBody swaps the whole body, keeping the record's stamp.
func (l *List) ReplaceBody(pos int, body []string) error {
	i, err := l.index(pos)
	if err != nil {
		return err
	}
	cur := l.records[i]
	r, err := NewRecord(cur.Date, cur.Time, cur.Priority, body)
	if err != nil {
		return err
	}
	l.records[i] = r
	return nil
}

// Delete removes the record at pos and shifts later positions down by one.
func (l *List) Delete(pos int) error {
	i, err := l.index(pos)
	if err != nil {
		return err
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return nil
}

func (l *List) index(pos int) (int, error) {
	if pos < 1 || pos > len(l.records) {
		return 0, fmt.Errorf("%w: %d not in 1-%d", ErrOutOfRange, pos, len(l.records))
	}
	return pos - 1, nil
}
