// Package state tracks which tasks of a loaded schedule are completed,
// together with per-task notes, and persists that record independently
// of the schedule file.
package state

import (
	"fmt"
	"time"

	"dayplan/internal/schedule"
)

// TaskNote is a timestamped note attached to a task.
type TaskNote struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// AppState is the mutable completion record kept alongside a loaded
// schedule. The schedule file itself is never written by these
// operations.
type AppState struct {
	// ScheduleFile points at the schedule this state was created
	// against. Not validated for existence here; the caller resolves
	// it.
	ScheduleFile string `json:"schedule_file"`
	// ScheduleDate is informational, copied from the schedule at
	// creation time (YYYY-MM-DD).
	ScheduleDate string `json:"schedule_date"`
	// CompletedTasks is a set of task IDs kept in insertion order.
	// Membership is not cross-checked against any schedule.
	CompletedTasks []string              `json:"completed_tasks"`
	TaskNotes      map[string][]TaskNote `json:"task_notes"`
	LastUpdated    time.Time             `json:"last_updated"`
}

// New creates the state record for a freshly loaded schedule.
func New(scheduleFile string, scheduleDate time.Time) *AppState {
	return &AppState{
		ScheduleFile:   scheduleFile,
		ScheduleDate:   scheduleDate.Format(schedule.DateFormat),
		CompletedTasks: []string{},
		TaskNotes:      map[string][]TaskNote{},
		LastUpdated:    time.Now(),
	}
}

// MarkComplete records a task as completed. Idempotent on membership;
// LastUpdated is bumped either way.
func (s *AppState) MarkComplete(taskID string) {
	if !s.IsComplete(taskID) {
		s.CompletedTasks = append(s.CompletedTasks, taskID)
	}
	s.LastUpdated = time.Now()
}

// MarkIncomplete removes a task from the completed set.
func (s *AppState) MarkIncomplete(taskID string) {
	for i, id := range s.CompletedTasks {
		if id == taskID {
			s.CompletedTasks = append(s.CompletedTasks[:i], s.CompletedTasks[i+1:]...)
			break
		}
	}
	s.LastUpdated = time.Now()
}

// IsComplete reports whether a task is marked complete.
func (s *AppState) IsComplete(taskID string) bool {
	for _, id := range s.CompletedTasks {
		if id == taskID {
			return true
		}
	}
	return false
}

// CompletedCount returns the number of completed tasks.
func (s *AppState) CompletedCount() int {
	return len(s.CompletedTasks)
}

// CompletionPercentage returns 100*completed/total, or 0 when the
// schedule has no tasks.
func (s *AppState) CompletionPercentage(totalTasks int) float64 {
	if totalTasks == 0 {
		return 0.0
	}
	return float64(len(s.CompletedTasks)) / float64(totalTasks) * 100.0
}

// AddNote appends a note to a task. Content must be 1-1000 characters.
func (s *AppState) AddNote(taskID, content string) error {
	if content == "" {
		return fmt.Errorf("note content is empty")
	}
	if len(content) > 1000 {
		return fmt.Errorf("note content exceeds 1000 characters")
	}
	if s.TaskNotes == nil {
		s.TaskNotes = map[string][]TaskNote{}
	}
	s.TaskNotes[taskID] = append(s.TaskNotes[taskID], TaskNote{
		Timestamp: time.Now(),
		Content:   content,
	})
	s.LastUpdated = time.Now()
	return nil
}

// Notes returns the notes for a task in the order they were added.
func (s *AppState) Notes(taskID string) []TaskNote {
	return s.TaskNotes[taskID]
}

// HasNotes reports whether a task has at least one note.
func (s *AppState) HasNotes(taskID string) bool {
	return len(s.TaskNotes[taskID]) > 0
}
