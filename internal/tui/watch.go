// Package tui renders the live registry view behind `caffeinate2 status
// --watch`: the current sleep setting and every recorded holder, refreshed
// when the lock file changes.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/Randomblock1/caffeinate2/internal/lock"
)

// Holder is one registry entry annotated for display.
type Holder struct {
	Identity lock.Identity
	Alive    bool
	Since    time.Time // zero when the entry has no start time
}

// Status is a point-in-time view of the sleep setting and its holders.
type Status struct {
	SleepDisabled bool
	SleepKnown    bool // false when the platform query failed
	Holders       []Holder
}

// Fetch produces a fresh Status. Called off the UI goroutine.
type Fetch func() (Status, error)

// refreshEvery is the fallback poll period; liveness and relative times
// drift even when the file does not change.
const refreshEvery = 2 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type (
	statusMsg      struct{ status Status }
	errMsg         struct{ err error }
	fileChangedMsg struct{}
	refreshTickMsg struct{}
)

// Model is the bubbletea model for the watch view.
type Model struct {
	path    string
	fetch   Fetch
	watcher *fsnotify.Watcher
	spin    spinner.Model

	status   Status
	loaded   bool
	err      error
	quitting bool
}

// NewModel builds the watch model. watcher may be nil in tests.
func NewModel(path string, fetch Fetch, watcher *fsnotify.Watcher) Model {
	return Model{
		path:    path,
		fetch:   fetch,
		watcher: watcher,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Run watches the registry at path until the user quits.
func Run(path string, fetch Fetch) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: the registry may not exist
	// yet, and directory watches survive the file being replaced.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	_, err = tea.NewProgram(NewModel(path, fetch, watcher)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd(), m.watchCmd(), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case statusMsg:
		m.status = msg.status
		m.loaded = true
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loaded = true
		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(m.fetchCmd(), m.watchCmd())

	case refreshTickMsg:
		return m, tea.Batch(m.fetchCmd(), tickCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("caffeinate2") + "  " + footerStyle.Render(m.path) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	case !m.loaded:
		b.WriteString(m.spin.View() + " reading registry...\n")
	default:
		b.WriteString(renderStatus(m.status))
	}

	b.WriteString("\n" + footerStyle.Render("q to quit"))
	return b.String()
}

func renderStatus(st Status) string {
	var b strings.Builder

	switch {
	case !st.SleepKnown:
		b.WriteString(idleStyle.Render("sleep state unknown") + "\n")
	case st.SleepDisabled:
		b.WriteString(activeStyle.Render("system sleep is DISABLED") + "\n")
	default:
		b.WriteString(idleStyle.Render("system sleep is enabled") + "\n")
	}
	b.WriteString("\n")

	if len(st.Holders) == 0 {
		b.WriteString(idleStyle.Render("no holders recorded") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d holder(s):\n", len(st.Holders))
	for _, h := range st.Holders {
		b.WriteString("  " + renderHolder(h) + "\n")
	}
	return b.String()
}

func renderHolder(h Holder) string {
	line := fmt.Sprintf("pid %d", h.Identity.PID)
	if !h.Since.IsZero() {
		line += ", started " + humanize.Time(h.Since)
	}
	if h.Alive {
		return activeStyle.Render("●") + " " + line
	}
	return staleStyle.Render("✗") + " " + line + staleStyle.Render(" (stale)")
}

func (m Model) fetchCmd() tea.Cmd {
	fetch := m.fetch
	return func() tea.Msg {
		st, err := fetch()
		if err != nil {
			return errMsg{err}
		}
		return statusMsg{status: st}
	}
}

// watchCmd blocks on the fsnotify channel until something touches the
// registry. Re-armed by Update after every delivery.
func (m Model) watchCmd() tea.Cmd {
	watcher, path := m.watcher, m.path
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Name == path {
					return fileChangedMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}
