package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tasklist/internal/task"
)

// YAMLFile keeps the list in a single human-editable YAML document.
type YAMLFile struct {
	Path string
}

type yamlDoc struct {
	Tasks []stored `yaml:"tasks"`
}

func OpenYAML(path string) (*YAMLFile, error) {
	if path == "" {
		return nil, errors.New("data path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	return &YAMLFile{Path: path}, nil
}

func (f *YAMLFile) Load() ([]task.Record, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	records := make([]task.Record, 0, len(doc.Tasks))
	for i, st := range doc.Tasks {
		r, err := st.record()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Save writes to a temporary sibling and renames it over the target.
func (f *YAMLFile) Save(records []task.Record) error {
	doc := yamlDoc{Tasks: make([]stored, 0, len(records))}
	for _, r := range records {
		doc.Tasks = append(doc.Tasks, toStored(r))
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

func (f *YAMLFile) Close() error {
	return nil
}
