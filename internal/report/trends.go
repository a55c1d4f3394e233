package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"dayplan/internal/schedule"
	"dayplan/internal/state"
)

// historyFileName is the structured per-day record store kept next to
// the text reports. The text report is a display artifact; this file is
// the trend source of truth.
const historyFileName = "history.jsonl"

// Trend analysis errors.
var (
	ErrNoReportsDir = errors.New("no reports directory found")
	ErrNoReports    = errors.New("no reports found")
	ErrUnparsable   = errors.New("could not parse reports")
)

// DayStats is the structured summary recorded for one day.
type DayStats struct {
	Date                  string    `json:"date"`
	TotalTasks            int       `json:"total_tasks"`
	CompletedTasks        int       `json:"completed_tasks"`
	CompletionPercentage  float64   `json:"completion_percentage"`
	TotalMinutes          int       `json:"total_minutes"`
	CompletedMinutes      int       `json:"completed_minutes"`
	HighPriorityCompleted int       `json:"high_priority_completed"`
	HighPriorityTotal     int       `json:"high_priority_total"`
	GeneratedAt           time.Time `json:"generated_at"`
}

// ComputeDayStats aggregates one day's numbers from a schedule and its
// state snapshot.
func ComputeDayStats(s *schedule.Schedule, st *state.AppState) DayStats {
	completedMinutes := 0
	highTotal, highDone := 0, 0
	for i := range s.Tasks {
		t := &s.Tasks[i]
		done := st.IsComplete(t.ID)
		if done {
			completedMinutes += t.DurationMinutes()
		}
		if t.Priority == schedule.PriorityHigh {
			highTotal++
			if done {
				highDone++
			}
		}
	}
	return DayStats{
		Date:                  s.DateString(),
		TotalTasks:            len(s.Tasks),
		CompletedTasks:        st.CompletedCount(),
		CompletionPercentage:  st.CompletionPercentage(len(s.Tasks)),
		TotalMinutes:          s.TotalMinutes(),
		CompletedMinutes:      completedMinutes,
		HighPriorityCompleted: highDone,
		HighPriorityTotal:     highTotal,
	}
}

// appendHistory appends one record. Re-saving a day's report appends a
// newer record for the same date; readers take the last record per
// date.
func appendHistory(reportsDir string, rec DayStats) error {
	f, err := os.OpenFile(filepath.Join(reportsDir, historyFileName),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// readHistory returns the last record per date, newest date first.
// Malformed lines are skipped.
func readHistory(reportsDir string) ([]DayStats, error) {
	f, err := os.Open(filepath.Join(reportsDir, historyFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	byDate := make(map[string]DayStats)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec DayStats
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil || rec.Date == "" {
			continue
		}
		byDate[rec.Date] = rec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	records := make([]DayStats, 0, len(byDate))
	for _, rec := range byDate {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records, nil
}

// TrendSummary aggregates completion percentages across recent days.
type TrendSummary struct {
	DaysAnalyzed int
	Average      float64
	Max          float64
	Min          float64
	// Trend is improving, declining, stable, or insufficient_data.
	Trend string
	// Daily holds completion percentages, newest first.
	Daily []float64
}

// AnalyzeTrends reads up to days recent day records and classifies the
// trend. The structured history is preferred; report files that predate
// it are text-scanned as a fallback.
func AnalyzeTrends(reportsDir string, days int) (*TrendSummary, error) {
	if _, err := os.Stat(reportsDir); os.IsNotExist(err) {
		return nil, ErrNoReportsDir
	}

	records, err := readHistory(reportsDir)
	if err != nil {
		return nil, err
	}
	var daily []float64
	for _, rec := range records {
		if len(daily) == days {
			break
		}
		daily = append(daily, round1(rec.CompletionPercentage))
	}

	if len(daily) == 0 {
		daily, err = scanReportFiles(reportsDir, days)
		if err != nil {
			return nil, err
		}
	}

	summary := &TrendSummary{
		DaysAnalyzed: len(daily),
		Max:          daily[0],
		Min:          daily[0],
		Daily:        daily,
	}
	sum := 0.0
	for _, pct := range daily {
		sum += pct
		summary.Max = math.Max(summary.Max, pct)
		summary.Min = math.Min(summary.Min, pct)
	}
	summary.Average = round1(sum / float64(len(daily)))
	summary.Trend = classifyTrend(daily)
	return summary, nil
}

// classifyTrend compares the mean of the 3 most-recent values against
// the mean of the remainder.
func classifyTrend(daily []float64) string {
	if len(daily) < 2 {
		return "insufficient_data"
	}
	n := 3
	if len(daily) < n {
		n = len(daily)
	}
	recent := mean(daily[:n])
	older := recent
	if len(daily) > 3 {
		older = mean(daily[3:])
	}
	switch {
	case recent > older+5:
		return "improving"
	case recent < older-5:
		return "declining"
	default:
		return "stable"
	}
}

// scanReportFiles extracts completion percentages from saved report
// text, newest first by modification time. Kept only for report files
// written before the history store existed.
func scanReportFiles(reportsDir string, days int) ([]float64, error) {
	paths, err := ListRecent(reportsDir, days)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoReports
	}

	var daily []float64
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if pct, ok := parseCompletionLine(string(content)); ok {
			daily = append(daily, round1(pct))
		}
	}
	if len(daily) == 0 {
		return nil, ErrUnparsable
	}
	return daily, nil
}

// parseCompletionLine finds the "Completed:        N (P%)" summary line.
func parseCompletionLine(content string) (float64, bool) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "Completed:") || !strings.Contains(line, "(") {
			continue
		}
		inner := line[strings.Index(line, "(")+1:]
		end := strings.Index(inner, "%")
		if end < 0 {
			continue
		}
		pct, err := strconv.ParseFloat(inner[:end], 64)
		if err != nil {
			continue
		}
		return pct, true
	}
	return 0, false
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatTrends renders the trend summary for terminal display.
func FormatTrends(ts *TrendSummary) string {
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	lines := []string{
		heavy,
		fmt.Sprintf("PRODUCTIVITY STATISTICS - Last %d Days", ts.DaysAnalyzed),
		heavy,
		"",
		"OVERVIEW",
		light,
		fmt.Sprintf("Average Completion:  %.1f%%", ts.Average),
		fmt.Sprintf("Best Day:            %.1f%%", ts.Max),
		fmt.Sprintf("Lowest Day:          %.1f%%", ts.Min),
		"",
		"TREND ANALYSIS",
		light,
		"Trend: " + trendMessage(ts.Trend),
		"",
		"DAILY COMPLETIONS",
		light,
	}

	for i, pct := range ts.Daily {
		label := "Today"
		if i > 0 {
			label = fmt.Sprintf("Day -%d", i)
		}
		bar := strings.Repeat("█", int(pct/2)) // scale to 50 cols max
		lines = append(lines, fmt.Sprintf("%-8s  %s %.1f%%", label, bar, pct))
	}

	lines = append(lines, "", heavy)
	return strings.Join(lines, "\n")
}

func trendMessage(trend string) string {
	switch trend {
	case "improving":
		return "📈 Productivity is improving! Keep it up!"
	case "declining":
		return "📉 Productivity trending down. Consider adjusting your schedule."
	case "stable":
		return "➡️ Productivity is consistent."
	default:
		return "❓ Need more data for trend analysis."
	}
}
