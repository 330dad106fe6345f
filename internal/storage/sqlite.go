package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tasklist/internal/task"
)

type SQLite struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	ddl := []string{`
CREATE TABLE IF NOT EXISTS tasks (
	position INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	priority TEXT NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS task_lines (
	position INTEGER NOT NULL,
	line_no INTEGER NOT NULL,
	body TEXT NOT NULL,
	PRIMARY KEY (position, line_no)
);`}
	for _, stmt := range ddl {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Load() ([]task.Record, error) {
	rows, err := s.db.Query(`SELECT position, date, time, priority FROM tasks ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []int
	byPos := map[int]*stored{}
	for rows.Next() {
		var pos int
		var st stored
		if err := rows.Scan(&pos, &st.Date, &st.Time, &st.Priority); err != nil {
			return nil, err
		}
		order = append(order, pos)
		byPos[pos] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadLines(byPos); err != nil {
		return nil, err
	}

	records := make([]task.Record, 0, len(order))
	for _, pos := range order {
		r, err := byPos[pos].record()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", pos, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *SQLite) loadLines(byPos map[int]*stored) error {
	rows, err := s.db.Query(`SELECT position, body FROM task_lines ORDER BY position, line_no;`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var pos int
		var body string
		if err := rows.Scan(&pos, &body); err != nil {
			return err
		}
		if st, ok := byPos[pos]; ok {
			st.Body = append(st.Body, body)
		}
	}
	return rows.Err()
}

// Save rewrites both tables inside one transaction.
func (s *SQLite) Save(records []task.Record) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM task_lines;`); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	for i, r := range records {
		st := toStored(r)
		pos := i + 1
		if _, err = tx.Exec(`INSERT INTO tasks (position, date, time, priority) VALUES (?, ?, ?, ?);`,
			pos, st.Date, st.Time, st.Priority); err != nil {
			return err
		}
		for n, line := range st.Body {
			if _, err = tx.Exec(`INSERT INTO task_lines (position, line_no, body) VALUES (?, ?, ?);`,
				pos, n, line); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
