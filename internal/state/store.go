package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the per-user root directory under $HOME.
	DefaultDirName = ".dayplan"

	stateFileName  = "state.json"
	reportsDirName = "reports"
)

// ErrNoState marks operations that need a state file when none exists.
var ErrNoState = errors.New("no state exists, load a schedule first")

// Error wraps a failure reading or writing the state file.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Store persists AppState to a fixed location under a single root
// directory. One process writes at a time; there is no locking (a
// human-driven tool, not invoked concurrently by automation).
type Store struct {
	root string
}

// DefaultRoot returns ~/.dayplan.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// NewStore creates a store rooted at dir, creating the root if needed.
// An empty dir selects the default root. The root is always an explicit
// parameter so tests can inject an isolated directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DefaultRoot()
		if err != nil {
			return nil, &Error{Op: "init", Err: err}
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &Error{Op: "init", Err: err}
	}
	return &Store{root: dir}, nil
}

// Root returns the configured root directory.
func (s *Store) Root() string {
	return s.root
}

// StatePath returns the fixed state file location.
func (s *Store) StatePath() string {
	return filepath.Join(s.root, stateFileName)
}

// ReportsDir creates (idempotently) and returns the reports directory.
func (s *Store) ReportsDir() (string, error) {
	dir := filepath.Join(s.root, reportsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &Error{Op: "create reports dir", Err: err}
	}
	return dir, nil
}

// Exists reports whether a state file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.StatePath())
	return err == nil
}

// Load reads the persisted state. A missing file is a first run, not an
// error: it returns (nil, nil).
func (s *Store) Load() (*AppState, error) {
	data, err := os.ReadFile(s.StatePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Op: "read", Err: err}
	}

	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, &Error{Op: "parse", Err: err}
	}
	if st.ScheduleFile == "" {
		return nil, &Error{Op: "parse", Err: errors.New("missing schedule_file")}
	}
	if st.CompletedTasks == nil {
		st.CompletedTasks = []string{}
	}
	if st.TaskNotes == nil {
		st.TaskNotes = map[string][]TaskNote{}
	}
	return &st, nil
}

// Save writes the full state atomically: a reader observes either the
// previous content or the new one, never a partial file.
func (s *Store) Save(st *AppState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return &Error{Op: "marshal", Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.root, "."+stateFileName+".tmp*")
	if err != nil {
		return &Error{Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &Error{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.StatePath()); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "write", Err: err}
	}
	return nil
}

// MarkComplete is a read-modify-write: load, mutate, save. Not atomic
// across processes; last writer wins.
func (s *Store) MarkComplete(taskID string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	if st == nil {
		return &Error{Op: "mark complete", Err: ErrNoState}
	}
	st.MarkComplete(taskID)
	return s.Save(st)
}

// MarkIncomplete mirrors MarkComplete for undo.
func (s *Store) MarkIncomplete(taskID string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	if st == nil {
		return &Error{Op: "mark incomplete", Err: ErrNoState}
	}
	st.MarkIncomplete(taskID)
	return s.Save(st)
}

// AddNote appends a note to a task and persists the state.
func (s *Store) AddNote(taskID, content string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	if st == nil {
		return &Error{Op: "add note", Err: ErrNoState}
	}
	if err := st.AddNote(taskID, content); err != nil {
		return &Error{Op: "add note", Err: err}
	}
	return s.Save(st)
}

// Clear deletes the state file. A missing file is a no-op, not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.StatePath())
	if err != nil && !os.IsNotExist(err) {
		return &Error{Op: "clear", Err: err}
	}
	return nil
}
