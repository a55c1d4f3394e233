package export

import (
	"encoding/json"
	"os"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

type jsonNote struct {
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

type jsonTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   *bool      `json:"completed,omitempty"`
	Notes       []jsonNote `json:"notes,omitempty"`
}

type jsonSchedule struct {
	Date  string     `json:"date"`
	Tasks []jsonTask `json:"tasks"`
}

// JSON writes the schedule dump. When st is supplied each task gains a
// completed boolean and, if present, its notes.
func JSON(s *schedule.Schedule, st *state.AppState, path string) error {
	out := jsonSchedule{Date: s.DateString(), Tasks: make([]jsonTask, 0, len(s.Tasks))}
	for i := range s.Tasks {
		t := &s.Tasks[i]
		jt := jsonTask{
			ID:          t.ID,
			Title:       t.Title,
			StartTime:   t.Start.String(),
			EndTime:     t.End.String(),
			Description: t.Description,
			Priority:    string(t.Priority),
		}
		if st != nil {
			completed := st.IsComplete(t.ID)
			jt.Completed = &completed
			for _, note := range st.Notes(t.ID) {
				jt.Notes = append(jt.Notes, jsonNote{
					Timestamp: note.Timestamp.Format("2006-01-02T15:04:05"),
					Content:   note.Content,
				})
			}
		}
		out.Tasks = append(out.Tasks, jt)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
