package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

// SchemaVersion is the project file format version written by Save.
const SchemaVersion = 1

// File is the on-disk form of a project.
type File struct {
	SchemaVersion int        `json:"schema_version" yaml:"schema_version"`
	Name          string     `json:"name,omitempty" yaml:"name,omitempty"`
	Tasks         []FileTask `json:"tasks" yaml:"tasks"`
}

// FileTask is one task in canonical order. Dates are dd/mm/yyyy text.
type FileTask struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string `json:"name" yaml:"name"`
	StartDate  string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Duration   int    `json:"duration" yaml:"duration"`
	Dedication int    `json:"dedication" yaml:"dedication"`
	Color      string `json:"color,omitempty" yaml:"color,omitempty"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
	IsSubtask  bool   `json:"is_subtask,omitempty" yaml:"is_subtask,omitempty"`
	Collapsed  bool   `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
}

// NewFile returns an empty project file.
func NewFile(name string) *File {
	return &File{SchemaVersion: SchemaVersion, Name: name, Tasks: []FileTask{}}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads and parses a project file. Paths ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	var f File
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse project file: %w", err)
	}
	if f.Tasks == nil {
		f.Tasks = []FileTask{}
	}

	return &f, nil
}

// Save writes the project file to path. JSON output uses 2-space indentation
// and a trailing newline.
func (f *File) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshal project file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create project dir: %w", err)
		}
	}
	// Write then rename so a failed save never truncates the old file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write project file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write project file: %w", err)
	}

	return nil
}

// FromFile builds a store from f. Unparseable dates load as missing dates
// and a subtask with no parent before it is promoted to a top-level task;
// run Validate first to reject such files instead. Durations are recomputed
// only when both dates are valid.
func FromFile(f *File, engine *calendar.Engine) *Store {
	s := NewStore(engine)
	s.tasks = make([]*Task, 0, len(f.Tasks))
	seen := make(map[string]bool, len(f.Tasks))
	for _, ft := range f.Tasks {
		id := ft.ID
		if id == "" || seen[id] {
			id = newID()
		}
		seen[id] = true
		t := &Task{
			ID:         id,
			Name:       ft.Name,
			Duration:   ft.Duration,
			Dedication: ft.Dedication,
			Color:      ft.Color,
			Notes:      ft.Notes,
			IsSubtask:  ft.IsSubtask && len(s.tasks) > 0,
			Collapsed:  ft.Collapsed,
		}
		t.StartDate, _ = calendar.ParseDate(ft.StartDate)
		t.EndDate, _ = calendar.ParseDate(ft.EndDate)
		if t.IsSubtask {
			t.Collapsed = false
		}
		if !t.StartDate.IsZero() && !t.EndDate.IsZero() {
			t.setDates(s.engine.Normalize(t.dates(), calendar.FieldEnd))
		}
		s.tasks = append(s.tasks, t)
	}
	s.invalidate()
	return s
}

// ToFile converts the store to its on-disk form.
func (s *Store) ToFile(name string) *File {
	f := NewFile(name)
	for _, t := range s.tasks {
		f.Tasks = append(f.Tasks, FileTask{
			ID:         t.ID,
			Name:       t.Name,
			StartDate:  calendar.FormatDate(t.StartDate),
			EndDate:    calendar.FormatDate(t.EndDate),
			Duration:   t.Duration,
			Dedication: t.Dedication,
			Color:      t.Color,
			Notes:      t.Notes,
			IsSubtask:  t.IsSubtask,
			Collapsed:  t.Collapsed && !t.IsSubtask,
		})
	}
	return f
}
