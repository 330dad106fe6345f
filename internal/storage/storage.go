package storage

import (
	"fmt"

	"tasklist/internal/task"
)

const (
	KindSQLite = "sqlite"
	KindYAML   = "yaml"
)

// Backend persists the whole task list. Save replaces everything previously
// stored; Load returns records in saved order.
type Backend interface {
	Load() ([]task.Record, error)
	Save(records []task.Record) error
	Close() error
}

func Open(kind, path string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return OpenSQLite(path)
	case KindYAML:
		return OpenYAML(path)
	default:
		return nil, fmt.Errorf("unknown storage %q", kind)
	}
}

// stored is the persisted shape of a record; urgency is never part of it.
type stored struct {
	Date     string   `yaml:"date"`
	Time     string   `yaml:"time"`
	Priority string   `yaml:"priority"`
	Body     []string `yaml:"body"`
}

func toStored(r task.Record) stored {
	return stored{Date: r.Date, Time: r.Time, Priority: r.Priority.Letter, Body: r.Body}
}

func (s stored) record() (task.Record, error) {
	return task.NewRecord(s.Date, s.Time, task.Marker{Letter: s.Priority}, s.Body)
}
