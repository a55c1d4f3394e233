// Package schedule models a single day's time-boxed tasks and the
// operations that query them by wall-clock time.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// DateFormat is the wire format for schedule dates.
const DateFormat = "2006-01-02"

// TimeOfDay is a naive local wall-clock time within one day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// TimeOfDayFromClock truncates a full timestamp to its wall-clock time.
func TimeOfDayFromClock(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// MinuteOfDay returns the minute index since midnight, used for all
// interval arithmetic.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.MinuteOfDay() < u.MinuteOfDay()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(data []byte) error {
	parsed, err := ParseTimeOfDay(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Priority is a task priority level.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Marker returns the textual priority badge used in reports and listings.
func (p Priority) Marker() string {
	switch p {
	case PriorityHigh:
		return "!!!"
	case PriorityMedium:
		return "!!"
	case PriorityLow:
		return "!"
	}
	return ""
}

// Task is one time-boxed item in a daily schedule. Tasks are constructed
// at load time and never mutated afterwards.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       TimeOfDay `json:"start_time"`
	End         TimeOfDay `json:"end_time"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
}

// DurationMinutes returns the task length in minutes. Always positive for
// a task that passed load validation (end > start, same day).
func (t *Task) DurationMinutes() int {
	return t.End.MinuteOfDay() - t.Start.MinuteOfDay()
}

// TimeRange returns the "HH:MM-HH:MM" form used in listings.
func (t *Task) TimeRange() string {
	return t.Start.String() + "-" + t.End.String()
}

// Schedule is the full set of tasks for one calendar date. Tasks are kept
// sorted ascending by start time; the sort is part of the canonical
// representation, not a display step.
type Schedule struct {
	Date  time.Time
	Tasks []Task
}

// New builds a Schedule from a date and an arbitrarily ordered task list.
// It applies the default priority, sorts by start time, and fails with a
// ParseError listing every violation: colliding task IDs, a task that
// does not end after it starts, or an unknown priority level.
func New(date time.Time, tasks []Task) (*Schedule, error) {
	var errs []error

	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	for i := range sorted {
		if sorted[i].Priority == "" {
			sorted[i].Priority = PriorityMedium
		}
	}

	seen := make(map[string]bool, len(sorted))
	for i := range sorted {
		t := &sorted[i]
		if seen[t.ID] {
			errs = append(errs, &FieldError{
				Path: fmt.Sprintf("tasks[%d].id", i),
				Err:  fmt.Errorf("duplicate task id %q", t.ID),
			})
		}
		seen[t.ID] = true
		if t.End.MinuteOfDay() <= t.Start.MinuteOfDay() {
			errs = append(errs, &FieldError{
				Path: fmt.Sprintf("tasks[%d]", i),
				Err:  fmt.Errorf("end_time (%s) must be after start_time (%s)", t.End, t.Start),
			})
		}
		if !t.Priority.Valid() {
			errs = append(errs, &FieldError{
				Path: fmt.Sprintf("tasks[%d].priority", i),
				Err:  fmt.Errorf("invalid priority %q, expected high, medium, or low", t.Priority),
			})
		}
	}
	if len(errs) > 0 {
		return nil, &ParseError{Reason: "schedule validation failed", Errs: errs}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	return &Schedule{Date: date, Tasks: sorted}, nil
}

// DateString returns the schedule date in YYYY-MM-DD form.
func (s *Schedule) DateString() string {
	return s.Date.Format(DateFormat)
}

// TaskByID returns the task with the given ID, or nil if absent.
func (s *Schedule) TaskByID(id string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// CurrentTask returns the task whose [start, end) interval contains the
// given time, or nil if none does. At a shared boundary the later task
// wins: its interval is the one containing the instant.
func (s *Schedule) CurrentTask(at TimeOfDay) *Task {
	m := at.MinuteOfDay()
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Start.MinuteOfDay() <= m && m < t.End.MinuteOfDay() {
			return t
		}
	}
	return nil
}

// UpcomingTasks returns up to limit tasks starting strictly after the
// given time, in ascending start order.
func (s *Schedule) UpcomingTasks(at TimeOfDay, limit int) []Task {
	m := at.MinuteOfDay()
	var upcoming []Task
	for _, t := range s.Tasks {
		if t.Start.MinuteOfDay() > m {
			upcoming = append(upcoming, t)
		}
		if len(upcoming) == limit {
			break
		}
	}
	return upcoming
}

// TotalMinutes sums the duration of every task.
func (s *Schedule) TotalMinutes() int {
	total := 0
	for i := range s.Tasks {
		total += s.Tasks[i].DurationMinutes()
	}
	return total
}

// FormatMinutes renders a minute count as "2h 15m", or "45m" when under
// an hour.
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
