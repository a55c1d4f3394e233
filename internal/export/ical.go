// Package export serializes a schedule (optionally joined with its
// completion state) to iCalendar, CSV, and JSON.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"dayplan/internal/schedule"
)

const icalTimeLayout = "20060102T150405"

// ICal writes one VEVENT per task. Event times combine the schedule
// date with each task's start and end; priority maps high→1, medium→5,
// low→9.
func ICal(s *schedule.Schedule, path string, now time.Time) error {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//dayplan//EN")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("METHOD:PUBLISH")

	stamp := now.Format(icalTimeLayout)
	for i := range s.Tasks {
		t := &s.Tasks[i]
		start := combine(s.Date, t.Start)
		end := combine(s.Date, t.End)

		writeLine("BEGIN:VEVENT")
		writeLine(fmt.Sprintf("UID:%s@dayplan", t.ID))
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART:" + start.Format(icalTimeLayout))
		writeLine("DTEND:" + end.Format(icalTimeLayout))
		writeLine("SUMMARY:" + t.Title)
		writeLine("DESCRIPTION:" + t.Description)
		writeLine("PRIORITY:" + icalPriority(t.Priority))
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func combine(date time.Time, t schedule.TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, time.Local)
}

func icalPriority(p schedule.Priority) string {
	switch p {
	case schedule.PriorityHigh:
		return "1"
	case schedule.PriorityLow:
		return "9"
	default:
		return "5"
	}
}
