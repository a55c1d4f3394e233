package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeHistoryRecords(t *testing.T, dir string, pcts map[string]float64) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	// Append order does not matter; readers sort by date.
	for date, pct := range pcts {
		rec := DayStats{Date: date, TotalTasks: 10,
			CompletedTasks:       int(pct / 10),
			CompletionPercentage: pct,
			GeneratedAt:          time.Now()}
		if err := appendHistory(dir, rec); err != nil {
			t.Fatal(err)
		}
	}
}

func TestComputeDayStats(t *testing.T) {
	s, st := testSchedule(t)
	rec := ComputeDayStats(s, st)

	if rec.Date != "2025-06-15" {
		t.Errorf("Date = %q", rec.Date)
	}
	if rec.TotalTasks != 3 || rec.CompletedTasks != 2 {
		t.Errorf("counts = %d/%d, want 2/3", rec.CompletedTasks, rec.TotalTasks)
	}
	if rec.CompletionPercentage < 66.6 || rec.CompletionPercentage > 66.7 {
		t.Errorf("CompletionPercentage = %v", rec.CompletionPercentage)
	}
	if rec.TotalMinutes != 150 || rec.CompletedMinutes != 90 {
		t.Errorf("minutes = %d/%d, want 90/150", rec.CompletedMinutes, rec.TotalMinutes)
	}
	if rec.HighPriorityTotal != 1 || rec.HighPriorityCompleted != 1 {
		t.Errorf("high priority = %d/%d, want 1/1", rec.HighPriorityCompleted, rec.HighPriorityTotal)
	}
}

func TestAnalyzeTrendsMissingDir(t *testing.T) {
	_, err := AnalyzeTrends(filepath.Join(t.TempDir(), "nope"), 7)
	if !errors.Is(err, ErrNoReportsDir) {
		t.Errorf("got %v, want ErrNoReportsDir", err)
	}
}

func TestAnalyzeTrendsEmptyDir(t *testing.T) {
	_, err := AnalyzeTrends(t.TempDir(), 7)
	if !errors.Is(err, ErrNoReports) {
		t.Errorf("got %v, want ErrNoReports", err)
	}
}

func TestAnalyzeTrendsFromHistory(t *testing.T) {
	dir := t.TempDir()
	writeHistoryRecords(t, dir, map[string]float64{
		"2025-06-13": 50,
		"2025-06-14": 70,
		"2025-06-15": 90,
	})

	ts, err := AnalyzeTrends(dir, 7)
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}
	if ts.DaysAnalyzed != 3 {
		t.Errorf("DaysAnalyzed = %d, want 3", ts.DaysAnalyzed)
	}
	if ts.Average != 70.0 {
		t.Errorf("Average = %v, want 70", ts.Average)
	}
	if ts.Max != 90.0 || ts.Min != 50.0 {
		t.Errorf("Max/Min = %v/%v, want 90/50", ts.Max, ts.Min)
	}
	// Newest first.
	if ts.Daily[0] != 90.0 || ts.Daily[2] != 50.0 {
		t.Errorf("Daily = %v", ts.Daily)
	}
}

func TestAnalyzeTrendsRespectsDayLimit(t *testing.T) {
	dir := t.TempDir()
	pcts := map[string]float64{}
	for i := 1; i <= 10; i++ {
		pcts[fmt.Sprintf("2025-06-%02d", i)] = float64(i * 10)
	}
	writeHistoryRecords(t, dir, pcts)

	ts, err := AnalyzeTrends(dir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if ts.DaysAnalyzed != 3 {
		t.Errorf("DaysAnalyzed = %d, want 3", ts.DaysAnalyzed)
	}
	// The 3 newest dates are June 10, 9, 8.
	if ts.Daily[0] != 100.0 || ts.Daily[1] != 90.0 || ts.Daily[2] != 80.0 {
		t.Errorf("Daily = %v", ts.Daily)
	}
}

func TestAnalyzeTrendsLastRecordPerDateWins(t *testing.T) {
	dir := t.TempDir()
	if err := appendHistory(dir, DayStats{Date: "2025-06-15", CompletionPercentage: 30}); err != nil {
		t.Fatal(err)
	}
	if err := appendHistory(dir, DayStats{Date: "2025-06-15", CompletionPercentage: 80}); err != nil {
		t.Fatal(err)
	}

	ts, err := AnalyzeTrends(dir, 7)
	if err != nil {
		t.Fatal(err)
	}
	if ts.DaysAnalyzed != 1 || ts.Daily[0] != 80.0 {
		t.Errorf("summary = %+v, want single 80%% day", ts)
	}
}

func TestAnalyzeTrendsSkipsMalformedHistoryLines(t *testing.T) {
	dir := t.TempDir()
	content := "garbage\n" +
		`{"date": "2025-06-15", "completion_percentage": 75}` + "\n" +
		"{}\n"
	if err := os.WriteFile(filepath.Join(dir, "history.jsonl"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ts, err := AnalyzeTrends(dir, 7)
	if err != nil {
		t.Fatal(err)
	}
	if ts.DaysAnalyzed != 1 || ts.Daily[0] != 75.0 {
		t.Errorf("summary = %+v", ts)
	}
}

func TestAnalyzeTrendsFallsBackToReportText(t *testing.T) {
	// Report files written before the history store existed only have
	// the text to go on.
	dir := t.TempDir()
	s, st := testSchedule(t)
	content := Generate(s, st, testClock())
	if err := os.WriteFile(filepath.Join(dir, "2025-06-15.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ts, err := AnalyzeTrends(dir, 7)
	if err != nil {
		t.Fatalf("AnalyzeTrends: %v", err)
	}
	if ts.DaysAnalyzed != 1 {
		t.Fatalf("DaysAnalyzed = %d, want 1", ts.DaysAnalyzed)
	}
	if ts.Daily[0] != 66.7 {
		t.Errorf("Daily[0] = %v, want 66.7", ts.Daily[0])
	}
}

func TestAnalyzeTrendsUnparsableReports(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2025-06-15.txt"), []byte("no numbers here"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := AnalyzeTrends(dir, 7)
	if !errors.Is(err, ErrUnparsable) {
		t.Errorf("got %v, want ErrUnparsable", err)
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name  string
		daily []float64
		want  string
	}{
		{"single day", []float64{50}, "insufficient_data"},
		{"empty", nil, "insufficient_data"},
		{"improving", []float64{90, 85, 80, 50, 40, 45}, "improving"},
		{"declining", []float64{30, 35, 40, 80, 85, 90}, "declining"},
		{"stable", []float64{70, 72, 68, 71, 69, 70}, "stable"},
		{"short stable", []float64{70, 71}, "stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTrend(tt.daily); got != tt.want {
				t.Errorf("classifyTrend(%v) = %q, want %q", tt.daily, got, tt.want)
			}
		})
	}
}

func TestFormatTrends(t *testing.T) {
	ts := &TrendSummary{
		DaysAnalyzed: 3,
		Average:      70.0,
		Max:          90.0,
		Min:          50.0,
		Trend:        "improving",
		Daily:        []float64{90, 70, 50},
	}
	got := FormatTrends(ts)
	for _, want := range []string{
		"PRODUCTIVITY STATISTICS - Last 3 Days",
		"Average Completion:  70.0%",
		"Best Day:            90.0%",
		"Lowest Day:          50.0%",
		"📈 Productivity is improving!",
		"Today",
		"Day -1",
		"Day -2",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatTrends output missing %q", want)
		}
	}
}
