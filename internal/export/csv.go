package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

// CSV writes one row per task. When st is nil the completed flag is
// "No" and the note count 0.
func CSV(s *schedule.Schedule, st *state.AppState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"task_id", "title", "start_time", "end_time", "duration_minutes",
		"description", "priority", "completed", "notes_count",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range s.Tasks {
		t := &s.Tasks[i]
		completed := "No"
		notes := 0
		if st != nil {
			if st.IsComplete(t.ID) {
				completed = "Yes"
			}
			notes = len(st.Notes(t.ID))
		}
		row := []string{
			t.ID,
			t.Title,
			t.Start.String(),
			t.End.String(),
			strconv.Itoa(t.DurationMinutes()),
			t.Description,
			string(t.Priority),
			completed,
			strconv.Itoa(notes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
