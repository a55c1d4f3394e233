// Package ui provides the interactive terminal view of a day's
// schedule.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/config"
	"dayplan/internal/schedule"
	"dayplan/internal/state"
	"dayplan/internal/ui/styles"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle done")),
		Refresh: key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type tickMsg time.Time

// Model is the bubbletea model for the schedule view. The schedule is
// immutable for the session; the state is re-read from disk on every
// tick, manual refresh, and completion toggle so edits from other
// invocations are absorbed. The current task is re-derived each time,
// never cached across ticks.
type Model struct {
	cfg       config.Config
	store     *state.Store
	sched     *schedule.Schedule
	schedPath string

	st      *state.AppState
	loadErr error

	cursor       int
	width        int
	showHelp     bool
	statusLine   string
	tickInterval time.Duration
	progress     progress.Model
	keys         keyMap
	now          func() time.Time
}

// New builds the view model. schedPath is recorded into any state file
// this session creates. The clock is injectable for tests.
func New(cfg config.Config, store *state.Store, sched *schedule.Schedule, schedPath string) *Model {
	return &Model{
		cfg:          cfg,
		store:        store,
		sched:        sched,
		schedPath:    schedPath,
		tickInterval: time.Duration(cfg.UI.AutoRefreshSeconds) * time.Second,
		progress:     progress.New(progress.WithDefaultGradient()),
		keys:         defaultKeyMap(),
		now:          time.Now,
	}
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Run starts the interactive view.
func Run(cfg config.Config, store *state.Store, sched *schedule.Schedule, schedPath string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("interactive view requires a TTY")
	}
	m := New(cfg, store, sched, schedPath)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the state file; a first run without state shows an
// empty completion record rather than an error.
func (m *Model) refresh() {
	st, err := m.store.Load()
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	if st == nil {
		st = state.New(m.schedPath, m.sched.Date)
	}
	m.st = st
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 50 {
			m.progress.Width = 50
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.statusLine = "refreshed"
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.sched.Tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggleSelected()
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

// toggleSelected flips completion of the task under the cursor through
// the store's read-modify-write so concurrent CLI edits are merged, then
// re-reads the result.
func (m *Model) toggleSelected() {
	if m.cursor >= len(m.sched.Tasks) {
		return
	}
	task := &m.sched.Tasks[m.cursor]

	st, err := m.store.Load()
	if err != nil {
		m.statusLine = err.Error()
		return
	}
	if st == nil {
		st = state.New(m.schedPath, m.sched.Date)
		if err := m.store.Save(st); err != nil {
			m.statusLine = err.Error()
			return
		}
	}

	if st.IsComplete(task.ID) {
		err = m.store.MarkIncomplete(task.ID)
	} else {
		err = m.store.MarkComplete(task.ID)
	}
	if err != nil {
		m.statusLine = err.Error()
		return
	}
	m.statusLine = ""
	m.refresh()
}

func (m *Model) View() string {
	var b strings.Builder

	clock := schedule.TimeOfDayFromClock(m.now())
	header := fmt.Sprintf("📅 %s", m.sched.Date.Format("Monday, January 02, 2006"))
	b.WriteString(styles.Title.Render(header))
	b.WriteString(styles.Dim.Render(fmt.Sprintf("   %s", clock)))
	b.WriteString("\n\n")

	if m.showHelp {
		m.writeHelp(&b)
		return b.String()
	}
	if m.loadErr != nil {
		b.WriteString(styles.ErrorText.Render("Error reading state: "+m.loadErr.Error()) + "\n")
		return b.String()
	}
	if m.st == nil {
		b.WriteString("Loading...\n")
		return b.String()
	}

	total := len(m.sched.Tasks)
	pct := m.st.CompletionPercentage(total)
	b.WriteString(fmt.Sprintf("  %d/%d done  ", m.st.CompletedCount(), total))
	b.WriteString(m.progress.ViewAs(pct / 100.0))
	b.WriteString("\n\n")

	current := m.sched.CurrentTask(clock)
	for i := range m.sched.Tasks {
		m.writeTask(&b, i, current, clock)
	}

	b.WriteString("\n")
	m.writeNowPanel(&b, current, clock)

	if m.statusLine != "" {
		b.WriteString("\n" + styles.Dim.Render(m.statusLine) + "\n")
	}
	b.WriteString("\n" + styles.Dim.Render("space toggle · r refresh · ? help · q quit") + "\n")
	return b.String()
}

func (m *Model) writeTask(b *strings.Builder, i int, current *schedule.Task, clock schedule.TimeOfDay) {
	t := &m.sched.Tasks[i]
	done := m.st.IsComplete(t.ID)
	isCurrent := current != nil && current.ID == t.ID
	isPast := t.End.MinuteOfDay() <= clock.MinuteOfDay()

	icon, style := "○", styles.Normal
	switch {
	case done:
		icon, style = "✓", styles.Done
	case isCurrent:
		icon, style = "▶", styles.CurrentT
	case isPast:
		style = styles.Dim
	}

	title := t.Title
	if i == m.cursor {
		title = styles.Selected.Render(title)
	}

	line := fmt.Sprintf("  %s %s  %s %s",
		style.Render(icon),
		styles.Time.Render(t.TimeRange()),
		title,
		styles.ForPriority(string(t.Priority)).Render(t.Priority.Marker()),
	)
	b.WriteString(line + "\n")

	if m.cfg.UI.Compact {
		return
	}
	if m.cfg.UI.ShowDescriptions && t.Description != "" {
		desc := t.Description
		if runes := []rune(desc); len(runes) > 75 {
			desc = string(runes[:75]) + "..."
		}
		b.WriteString("       " + styles.Dim.Render(desc) + "\n")
	}
	if m.cfg.UI.ShowDurations {
		b.WriteString("       " + styles.Dim.Render(schedule.FormatMinutes(t.DurationMinutes())) + "\n")
	}
}

func (m *Model) writeNowPanel(b *strings.Builder, current *schedule.Task, clock schedule.TimeOfDay) {
	if current != nil {
		b.WriteString(styles.CurrentT.Render("▶ Now: ") + current.Title)
		remaining := current.End.MinuteOfDay() - clock.MinuteOfDay()
		b.WriteString(styles.Dim.Render(fmt.Sprintf("  (%s left)", schedule.FormatMinutes(remaining))))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.Dim.Render("○ No current task") + "\n")
	}

	upcoming := m.sched.UpcomingTasks(clock, 3)
	if len(upcoming) > 0 {
		b.WriteString(styles.Title.Render("⏰ Up next:") + "\n")
		for _, t := range upcoming {
			b.WriteString(fmt.Sprintf("   %s %s\n", styles.Time.Render(t.Start.String()), t.Title))
		}
	}
}

func (m *Model) writeHelp(b *strings.Builder) {
	rows := [][2]string{
		{"↑/k, ↓/j", "move between tasks"},
		{"space, enter", "toggle completion of the selected task"},
		{"r", "re-read state from disk"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	b.WriteString(styles.Title.Render("Keys") + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", row[0], row[1]))
	}
	b.WriteString("\n" + styles.Dim.Render(
		fmt.Sprintf("The view refreshes every %ds and re-reads completion state from disk.", m.cfg.UI.AutoRefreshSeconds)) + "\n")
}
