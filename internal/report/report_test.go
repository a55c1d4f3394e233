package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sebdah/goldie/v2"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

func testDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
}

func testClock() time.Time {
	return time.Date(2025, 6, 15, 21, 30, 0, 0, time.Local)
}

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		t.Fatal(err)
	}
	return tod
}

// testSchedule is a three-task day: a completed high-priority standup,
// a completed medium-priority review, and an untouched low-priority
// writing block.
func testSchedule(t *testing.T) (*schedule.Schedule, *state.AppState) {
	t.Helper()
	s, err := schedule.New(testDate(), []schedule.Task{
		{ID: "task1", Title: "Morning standup", Start: mustTime(t, "09:00"), End: mustTime(t, "09:30"),
			Description: "Daily sync with the team", Priority: schedule.PriorityHigh},
		{ID: "task2", Title: "Code review", Start: mustTime(t, "10:00"), End: mustTime(t, "11:00"),
			Priority: schedule.PriorityMedium},
		{ID: "task3", Title: "Write documentation", Start: mustTime(t, "11:00"), End: mustTime(t, "12:00"),
			Priority: schedule.PriorityLow},
	})
	if err != nil {
		t.Fatal(err)
	}
	st := state.New("/abs/schedule.json", testDate())
	st.MarkComplete("task1")
	st.MarkComplete("task2")
	return s, st
}

func TestGenerateGolden(t *testing.T) {
	s, st := testSchedule(t)
	got := Generate(s, st, testClock())
	g := goldie.New(t)
	g.Assert(t, "daily_report", []byte(got))
}

func TestGenerateEmptyState(t *testing.T) {
	s, _ := testSchedule(t)
	st := state.New("/abs/schedule.json", testDate())
	got := Generate(s, st, testClock())

	for _, want := range []string{
		"Completed:        0 (0.0%)",
		"Incomplete:       3",
		"Time Completed:   0m",
		"💪 Challenging day. Focus on high-priority items first tomorrow.",
		"⚠️ 1 high-priority task(s) incomplete - consider these for tomorrow.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(got, "COMPLETED TASKS") {
		t.Error("empty state should not produce a completed tasks section")
	}
}

func TestGenerateInsightThresholds(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      string
	}{
		{5, 5, "🎉 Excellent work!"},
		{4, 5, "🎉 Excellent work!"}, // 80% is inclusive
		{3, 5, "👍 Good progress!"},
		{2, 5, "📈 Fair progress."},
		{1, 5, "💪 Challenging day."},
	}
	for _, tt := range tests {
		var tasks []schedule.Task
		for i := 0; i < tt.total; i++ {
			tasks = append(tasks, schedule.Task{
				ID:    "t" + strings.Repeat("x", i+1),
				Title: "Task", Priority: schedule.PriorityLow,
				Start: schedule.TimeOfDay{Hour: 8 + i}, End: schedule.TimeOfDay{Hour: 8 + i, Minute: 30},
			})
		}
		s, err := schedule.New(testDate(), tasks)
		if err != nil {
			t.Fatal(err)
		}
		st := state.New("/abs/s.json", testDate())
		for i := 0; i < tt.completed; i++ {
			st.MarkComplete(tasks[i].ID)
		}
		got := Generate(s, st, testClock())
		if !strings.Contains(got, tt.want) {
			t.Errorf("%d/%d complete: report missing %q", tt.completed, tt.total, tt.want)
		}
	}
}

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"", ""},
		{"short", "short"},
		{strings.Repeat("a", 60), strings.Repeat("a", 60)},
		{strings.Repeat("a", 61), strings.Repeat("a", 60) + "..."},
		// Character count, not byte count: multi-byte runes are kept
		// whole and counted as one.
		{strings.Repeat("é", 60), strings.Repeat("é", 60)},
		{strings.Repeat("é", 61), strings.Repeat("é", 60) + "..."},
		{strings.Repeat("a", 59) + "éx", strings.Repeat("a", 59) + "é..."},
	}
	for _, tt := range tests {
		got := TruncateDescription(tt.desc)
		if got != tt.want {
			t.Errorf("TruncateDescription(%q) = %q, want %q", tt.desc, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("TruncateDescription(%q) produced invalid UTF-8: %q", tt.desc, got)
		}
	}
}

func TestSaveWritesReportAndHistory(t *testing.T) {
	s, st := testSchedule(t)
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := Save(s, st, dir, testClock())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "2025-06-15.txt" {
		t.Errorf("report path = %q, want 2025-06-15.txt", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "DAILY PRODUCTIVITY REPORT") {
		t.Error("report file missing header")
	}

	records, err := readHistory(dir)
	if err != nil {
		t.Fatalf("readHistory: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d history records, want 1", len(records))
	}
	rec := records[0]
	if rec.Date != "2025-06-15" || rec.CompletedTasks != 2 || rec.TotalTasks != 3 {
		t.Errorf("history record = %+v", rec)
	}
}

func TestSaveOverwritesSameDate(t *testing.T) {
	s, st := testSchedule(t)
	dir := filepath.Join(t.TempDir(), "reports")

	if _, err := Save(s, st, dir, testClock()); err != nil {
		t.Fatal(err)
	}
	st.MarkComplete("task3")
	if _, err := Save(s, st, dir, testClock().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	reportFiles := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), Ext) {
			reportFiles++
		}
	}
	if reportFiles != 1 {
		t.Errorf("got %d report files, want 1", reportFiles)
	}

	// The history keeps both appends but readers see only the newest
	// record for the date.
	records, err := readHistory(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].CompletedTasks != 3 {
		t.Errorf("history after re-save = %+v", records)
	}
}

func TestListRecent(t *testing.T) {
	dir := t.TempDir()
	names := []string{"2025-06-13.txt", "2025-06-14.txt", "2025-06-15.txt"}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
	}
	// Non-report files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "history.jsonl"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ListRecent(dir, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	if filepath.Base(paths[0]) != "2025-06-15.txt" || filepath.Base(paths[1]) != "2025-06-14.txt" {
		t.Errorf("order wrong: %v", paths)
	}
}

func TestListRecentMissingDir(t *testing.T) {
	paths, err := ListRecent(filepath.Join(t.TempDir(), "nope"), 5)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if paths != nil {
		t.Errorf("got %v, want nil", paths)
	}
}
