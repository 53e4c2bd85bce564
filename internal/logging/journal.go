// Package logging provides the console logger and the per-project change
// journal.
//
// The journal is a set of JSONL files, one per UTC day, under
// <base>/<project-slug>-<hash>/. Each line is one applied store operation.
package logging

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Rudull/baby-project-manager/internal/project"
)

// Entry is one journal line.
type Entry struct {
	Time    time.Time  `json:"time"`
	Session string     `json:"session"`
	Source  string     `json:"source,omitempty"`
	Op      project.Op `json:"op"`
	ID      string     `json:"id,omitempty"`
	Actual  int        `json:"actual"`
	Visible int        `json:"visible"`
	First   int        `json:"first"`
	Last    int        `json:"last"`
	Field   string     `json:"field,omitempty"`
	Detail  string     `json:"detail,omitempty"`
}

// Journal appends applied changes for one project file.
type Journal struct {
	Dir     string
	Session string
	// Source labels every entry, for example "cli" or "tui".
	Source string

	mu   sync.Mutex
	now  func() time.Time
	file *os.File
	day  string
}

// NewJournal prepares the journal directory for projectFile under baseDir.
// Files are opened lazily on the first Record.
func NewJournal(baseDir, projectFile, source string) (*Journal, error) {
	dir, err := FindJournalDir(baseDir, projectFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &Journal{
		Dir:     dir,
		Session: sessionID(),
		Source:  source,
		now:     time.Now,
	}, nil
}

// FindJournalDir returns the journal directory for projectFile without
// creating it.
func FindJournalDir(baseDir, projectFile string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("journal base dir is empty")
	}
	if projectFile == "" {
		return "", fmt.Errorf("project file is empty")
	}
	abs, err := filepath.Abs(projectFile)
	if err != nil {
		return "", fmt.Errorf("resolve project file: %w", err)
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(filepath.Dir(abs), baseDir)
	}
	return filepath.Join(filepath.Clean(baseDir), projectSlug(abs)), nil
}

// Record appends c to the journal. Changes that were not applied are
// skipped.
func (j *Journal) Record(c project.Change) error {
	if j == nil || !c.Applied {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().UTC()
	if err := j.rotate(now); err != nil {
		return err
	}
	data, err := json.Marshal(Entry{
		Time:    now,
		Session: j.Session,
		Source:  j.Source,
		Op:      c.Op,
		ID:      c.TaskID,
		Actual:  c.Actual,
		Visible: c.Visible,
		First:   c.First,
		Last:    c.Last,
		Field:   c.Field,
		Detail:  c.Detail,
	})
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	data = append(data, '\n')
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// Path returns the file the next entry recorded now would go to.
func (j *Journal) Path() string {
	return filepath.Join(j.Dir, j.now().UTC().Format("20060102")+".jsonl")
}

// Close closes the current journal file.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}

// rotate opens the file for now's day, closing the previous one.
func (j *Journal) rotate(now time.Time) error {
	day := now.Format("20060102")
	if j.file != nil && j.day == day {
		return nil
	}
	if j.file != nil {
		j.file.Close()
		j.file = nil
	}
	path := filepath.Join(j.Dir, day+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	j.file, j.day = f, day
	return nil
}

// ReadEntries decodes every line of a journal file.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

// projectSlug names the journal directory after the project file and a hash
// of its absolute path, so two projects with the same name never share one.
func projectSlug(projectFile string) string {
	name := strings.TrimSuffix(filepath.Base(projectFile), filepath.Ext(projectFile))
	return fmt.Sprintf("%s-%s", slugify(name), hashPath(projectFile))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func sessionID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}
