package task

import "strings"

// EntryState tracks an Entry from its first line to Done or Aborted.
type EntryState int

const (
	EntryEmpty EntryState = iota
	EntryCollecting
	EntryDone
	EntryAborted
)

// Entry collects body lines until a blank line. A blank first line aborts it.
type Entry struct {
	date     string
	clock    string
	priority Marker
	lines    []string
	state    EntryState
}

// NewEntry starts collecting a body for an already validated stamp.
func NewEntry(date, clock string, priority Marker) *Entry {
	return &Entry{date: date, clock: clock, priority: priority}
}

// Feed consumes one input line and returns the resulting state. Lines fed
// after a terminal state are ignored.
func (e *Entry) Feed(line string) EntryState {
	if e.state == EntryDone || e.state == EntryAborted {
		return e.state
	}
	line = strings.TrimSpace(line)
	switch {
	case line == "" && e.state == EntryEmpty:
		e.state = EntryAborted
	case line == "":
		e.state = EntryDone
	default:
		e.lines = append(e.lines, line)
		e.state = EntryCollecting
	}
	return e.state
}

// State reports where the entry is without feeding it.
func (e *Entry) State() EntryState {
	return e.state
}

// Record returns the finished record, or ErrEmptyBody unless the entry is done.
func (e *Entry) Record() (Record, error) {
	if e.state != EntryDone {
		return Record{}, ErrEmptyBody
	}
	return NewRecord(e.date, e.clock, e.priority, e.lines)
}
