package schedule

import (
	"fmt"
	"strings"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// WarningType identifies the kind of validation finding.
type WarningType string

const (
	WarnOverlap       WarningType = "overlap"
	WarnShortGap      WarningType = "short_gap"
	WarnLargeGap      WarningType = "large_gap"
	WarnShortDuration WarningType = "short_duration"
	WarnLongDuration  WarningType = "long_duration"
)

// Warning is a non-fatal validation finding. It is reported, never
// raised.
type Warning struct {
	Type     WarningType
	Severity Severity
	Message  string
	TaskIDs  []string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(w.Severity)), w.Message)
}

// Options controls which validation checks run. Duration checks always
// run regardless of options.
type Options struct {
	WarnOverlapping bool
	WarnGaps        bool
	MinGapMinutes   int
	MaxGapMinutes   int
}

// DefaultOptions matches the default validation config.
func DefaultOptions() Options {
	return Options{
		WarnOverlapping: true,
		WarnGaps:        false,
		MinGapMinutes:   5,
		MaxGapMinutes:   120,
	}
}

// Validate checks a schedule for overlaps, suspicious gaps, and duration
// anomalies. It never mutates the schedule; an empty schedule yields no
// warnings. Output order is overlaps, then gaps, then durations.
func Validate(s *Schedule, opts Options) []Warning {
	var warnings []Warning
	if opts.WarnOverlapping {
		warnings = append(warnings, checkOverlaps(s)...)
	}
	if opts.WarnGaps {
		warnings = append(warnings, checkGaps(s, opts.MinGapMinutes, opts.MaxGapMinutes)...)
	}
	warnings = append(warnings, checkDurations(s)...)
	return warnings
}

// checkOverlaps flags every pair of tasks whose [start, end) intervals
// intersect. Touching endpoints do not overlap. Pairwise over the full
// list: non-adjacent overlaps are reported too.
func checkOverlaps(s *Schedule) []Warning {
	var warnings []Warning
	tasks := s.Tasks
	for i := range tasks {
		for j := i + 1; j < len(tasks); j++ {
			a, b := &tasks[i], &tasks[j]
			if a.End.MinuteOfDay() <= b.Start.MinuteOfDay() || b.End.MinuteOfDay() <= a.Start.MinuteOfDay() {
				continue
			}
			warnings = append(warnings, Warning{
				Type:     WarnOverlap,
				Severity: SeverityError,
				Message: fmt.Sprintf("tasks overlap: %q (%s) and %q (%s)",
					a.Title, a.TimeRange(), b.Title, b.TimeRange()),
				TaskIDs: []string{a.ID, b.ID},
			})
		}
	}
	return warnings
}

// checkGaps scans consecutive tasks in sorted order. A non-positive gap
// (touching or overlapping) produces nothing; overlap detection owns
// that case.
func checkGaps(s *Schedule, minGap, maxGap int) []Warning {
	var warnings []Warning
	for i := 0; i+1 < len(s.Tasks); i++ {
		prev, next := &s.Tasks[i], &s.Tasks[i+1]
		gap := next.Start.MinuteOfDay() - prev.End.MinuteOfDay()
		switch {
		case gap > 0 && gap < minGap:
			warnings = append(warnings, Warning{
				Type:     WarnShortGap,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("short transition time (%dm) between %q and %q",
					gap, prev.Title, next.Title),
				TaskIDs: []string{prev.ID, next.ID},
			})
		case gap > maxGap:
			warnings = append(warnings, Warning{
				Type:     WarnLargeGap,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("large gap (%s) between %q and %q",
					FormatMinutes(gap), prev.Title, next.Title),
				TaskIDs: []string{prev.ID, next.ID},
			})
		}
	}
	return warnings
}

func checkDurations(s *Schedule) []Warning {
	var warnings []Warning
	for i := range s.Tasks {
		t := &s.Tasks[i]
		duration := t.DurationMinutes()
		switch {
		case duration < 5:
			warnings = append(warnings, Warning{
				Type:     WarnShortDuration,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("very short task (%dm): %q, consider combining with adjacent tasks",
					duration, t.Title),
				TaskIDs: []string{t.ID},
			})
		case duration > 240:
			warnings = append(warnings, Warning{
				Type:     WarnLongDuration,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("very long task (%s): %q, consider breaking into smaller tasks",
					FormatMinutes(duration), t.Title),
				TaskIDs: []string{t.ID},
			})
		}
	}
	return warnings
}

// FormatWarnings renders validation findings grouped by severity.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return "✓ No validation issues found"
	}

	var errs, warns []Warning
	for _, w := range warnings {
		if w.Severity == SeverityError {
			errs = append(errs, w)
		} else {
			warns = append(warns, w)
		}
	}

	var b strings.Builder
	b.WriteString("Schedule validation findings:\n\n")
	if len(errs) > 0 {
		b.WriteString("ERRORS:\n")
		for _, w := range errs {
			b.WriteString("  ✗ " + w.Message + "\n")
		}
		b.WriteString("\n")
	}
	if len(warns) > 0 {
		b.WriteString("WARNINGS:\n")
		for _, w := range warns {
			b.WriteString("  ⚠ " + w.Message + "\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total: %d error(s), %d warning(s)", len(errs), len(warns))
	return b.String()
}
