package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

func testSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	s, err := schedule.New(time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), []schedule.Task{
		{ID: "standup", Title: "Morning standup",
			Start: schedule.TimeOfDay{Hour: 9}, End: schedule.TimeOfDay{Hour: 9, Minute: 30},
			Description: "Daily sync", Priority: schedule.PriorityHigh},
		{ID: "review", Title: "Code review",
			Start: schedule.TimeOfDay{Hour: 10}, End: schedule.TimeOfDay{Hour: 11},
			Priority: schedule.PriorityLow},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testState(t *testing.T) *state.AppState {
	t.Helper()
	st := state.New("/abs/schedule.json", time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local))
	st.MarkComplete("standup")
	if err := st.AddNote("standup", "ran long"); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestICal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ics")
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.Local)
	if err := ICal(testSchedule(t), path, now); err != nil {
		t.Fatalf("ICal: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"UID:standup@dayplan",
		"DTSTAMP:20250615T200000",
		"DTSTART:20250615T090000",
		"DTEND:20250615T093000",
		"SUMMARY:Morning standup",
		"PRIORITY:1",
		"UID:review@dayplan",
		"PRIORITY:9",
		"END:VCALENDAR",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("ical output missing %q", want)
		}
	}
	if got := strings.Count(content, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
}

func TestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := CSV(testSchedule(t), testState(t), path); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 tasks", len(rows))
	}
	if rows[0][0] != "task_id" || rows[0][8] != "notes_count" {
		t.Errorf("header = %v", rows[0])
	}

	standup := rows[1]
	if standup[0] != "standup" || standup[4] != "30" || standup[7] != "Yes" || standup[8] != "1" {
		t.Errorf("standup row = %v", standup)
	}
	review := rows[2]
	if review[0] != "review" || review[7] != "No" || review[8] != "0" {
		t.Errorf("review row = %v", review)
	}
}

func TestCSVWithoutState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := CSV(testSchedule(t), nil, path); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if rows[1][7] != "No" {
		t.Errorf("completed without state = %q, want No", rows[1][7])
	}
}

func TestJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := JSON(testSchedule(t), testState(t), path); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Date  string `json:"date"`
		Tasks []struct {
			ID        string `json:"id"`
			StartTime string `json:"start_time"`
			Completed *bool  `json:"completed"`
			Notes     []struct {
				Content string `json:"content"`
			} `json:"notes"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}

	if got.Date != "2025-06-15" {
		t.Errorf("date = %q", got.Date)
	}
	if len(got.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got.Tasks))
	}
	standup := got.Tasks[0]
	if standup.ID != "standup" || standup.StartTime != "09:00" {
		t.Errorf("first task = %+v", standup)
	}
	if standup.Completed == nil || !*standup.Completed {
		t.Error("standup should be completed")
	}
	if len(standup.Notes) != 1 || standup.Notes[0].Content != "ran long" {
		t.Errorf("standup notes = %v", standup.Notes)
	}
	review := got.Tasks[1]
	if review.Completed == nil || *review.Completed {
		t.Error("review should be present and incomplete")
	}
}

func TestJSONWithoutState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := JSON(testSchedule(t), nil, path); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "completed") {
		t.Error("stateless export should omit completion fields")
	}
}
