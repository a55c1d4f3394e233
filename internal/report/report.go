// Package report derives productivity reports and trend statistics from
// a schedule and its completion state. A report is a transient view; the
// only stored artifacts are the per-date text file and the structured
// history record written alongside it.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

// Ext is the report file extension, one file per schedule date.
const Ext = ".txt"

const ruleWidth = 70

// descLimit is where task descriptions are cut in report listings.
const descLimit = 60

// Generate renders the end-of-day report. Deterministic given its three
// inputs; the clock is injected for testability.
func Generate(s *schedule.Schedule, st *state.AppState, now time.Time) string {
	var b strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}

	line(heavy)
	line("DAILY PRODUCTIVITY REPORT")
	line("Date: %s", s.Date.Format("Monday, January 02, 2006"))
	line(heavy)
	line("")

	total := len(s.Tasks)
	completed := st.CompletedCount()
	pct := st.CompletionPercentage(total)

	line("SUMMARY")
	line(light)
	line("Total Tasks:      %d", total)
	// The trend fallback parser scans for this exact line shape; keep
	// it stable.
	line("Completed:        %d (%.1f%%)", completed, pct)
	line("Incomplete:       %d", total-completed)
	line("")

	completedMinutes := 0
	for i := range s.Tasks {
		if st.IsComplete(s.Tasks[i].ID) {
			completedMinutes += s.Tasks[i].DurationMinutes()
		}
	}
	line("TIME ANALYSIS")
	line(light)
	line("Total Scheduled:  %s", schedule.FormatMinutes(s.TotalMinutes()))
	line("Time Completed:   %s", schedule.FormatMinutes(completedMinutes))
	line("")

	line("PRIORITY BREAKDOWN")
	line(light)
	for _, p := range []schedule.Priority{schedule.PriorityHigh, schedule.PriorityMedium, schedule.PriorityLow} {
		bucketTotal, bucketDone := 0, 0
		for i := range s.Tasks {
			if s.Tasks[i].Priority != p {
				continue
			}
			bucketTotal++
			if st.IsComplete(s.Tasks[i].ID) {
				bucketDone++
			}
		}
		bucketPct := 0.0
		if bucketTotal > 0 {
			bucketPct = float64(bucketDone) / float64(bucketTotal) * 100.0
		}
		line("%-8s  %d/%d completed (%.0f%%)", strings.ToUpper(string(p)), bucketDone, bucketTotal, bucketPct)
	}
	line("")

	writeTaskSection := func(header, icon string, include func(*schedule.Task) bool) {
		var tasks []*schedule.Task
		for i := range s.Tasks {
			if include(&s.Tasks[i]) {
				tasks = append(tasks, &s.Tasks[i])
			}
		}
		if len(tasks) == 0 {
			return
		}
		line(header)
		line(light)
		for _, t := range tasks {
			line("  %s %s  %s %s", icon, t.TimeRange(), t.Title, t.Priority.Marker())
			if t.Description != "" {
				line("    %s", TruncateDescription(t.Description))
			}
			line("    Duration: %s", schedule.FormatMinutes(t.DurationMinutes()))
			line("")
		}
	}
	writeTaskSection("COMPLETED TASKS ✓", "✓", func(t *schedule.Task) bool { return st.IsComplete(t.ID) })
	writeTaskSection("INCOMPLETE TASKS ○", "○", func(t *schedule.Task) bool { return !st.IsComplete(t.ID) })

	line("INSIGHTS & RECOMMENDATIONS")
	line(light)
	for _, insight := range insights(s, st, pct) {
		line("  %s", insight)
	}

	line("")
	line(heavy)
	line("Report generated: %s", now.Format("2006-01-02 15:04:05"))
	b.WriteString(heavy)
	return b.String()
}

// TruncateDescription cuts a description to 60 characters, appending
// "..." whenever the original is longer. Counts runes, not bytes, so a
// multi-byte character is never split.
func TruncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) > descLimit {
		return string(runes[:descLimit]) + "..."
	}
	return desc
}

func insights(s *schedule.Schedule, st *state.AppState, pct float64) []string {
	var out []string
	switch {
	case pct >= 80:
		out = append(out, "🎉 Excellent work! You completed most of your tasks today.")
	case pct >= 60:
		out = append(out, "👍 Good progress! You're getting most things done.")
	case pct >= 40:
		out = append(out, "📈 Fair progress. Consider breaking tasks into smaller chunks.")
	default:
		out = append(out, "💪 Challenging day. Focus on high-priority items first tomorrow.")
	}

	highTotal, highIncomplete := 0, 0
	for i := range s.Tasks {
		if s.Tasks[i].Priority != schedule.PriorityHigh {
			continue
		}
		highTotal++
		if !st.IsComplete(s.Tasks[i].ID) {
			highIncomplete++
		}
	}
	if highIncomplete > 0 {
		out = append(out, fmt.Sprintf("⚠️ %d high-priority task(s) incomplete - consider these for tomorrow.", highIncomplete))
	}
	if highTotal > 0 && highIncomplete == 0 {
		out = append(out, "✨ All high-priority tasks completed!")
	}
	return out
}

// Save writes the report for the schedule's date into reportsDir,
// overwriting any previous report for that date, and appends the day's
// structured record to the trend history.
func Save(s *schedule.Schedule, st *state.AppState, reportsDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	content := Generate(s, st, now)
	path := filepath.Join(reportsDir, s.DateString()+Ext)
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	rec := ComputeDayStats(s, st)
	rec.GeneratedAt = now
	if err := appendHistory(reportsDir, rec); err != nil {
		return "", err
	}
	return path, nil
}

// ListRecent returns report file paths sorted by modification time,
// newest first, truncated to limit. A missing directory yields an empty
// list.
func ListRecent(reportsDir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(reportsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}
	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(reportsDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
