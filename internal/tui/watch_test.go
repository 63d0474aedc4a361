package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Randomblock1/caffeinate2/internal/lock"
)

func testStatus() Status {
	return Status{
		SleepDisabled: true,
		SleepKnown:    true,
		Holders: []Holder{
			{Identity: lock.Identity{PID: 1234, StartTime: 1}, Alive: true, Since: time.Now().Add(-time.Hour)},
			{Identity: lock.Identity{PID: 5678}, Alive: false},
		},
	}
}

func TestModelShowsHolders(t *testing.T) {
	m := NewModel("/tmp/test.lock", nil, nil)

	updated, _ := m.Update(statusMsg{status: testStatus()})
	view := updated.View()

	for _, want := range []string{"1234", "5678", "DISABLED", "stale", "2 holder(s)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelShowsError(t *testing.T) {
	m := NewModel("/tmp/test.lock", nil, nil)

	updated, _ := m.Update(errMsg{err: errors.New("registry unreadable")})
	view := updated.View()

	if !strings.Contains(view, "registry unreadable") {
		t.Errorf("view missing error:\n%s", view)
	}
}

func TestModelLoadingState(t *testing.T) {
	m := NewModel("/tmp/test.lock", nil, nil)

	if view := m.View(); !strings.Contains(view, "reading registry") {
		t.Errorf("initial view should show loading state:\n%s", view)
	}
}

func TestModelQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewModel("/tmp/test.lock", nil, nil)

			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			switch key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			case "ctrl+c":
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			}

			_, cmd := m.Update(msg)
			if cmd == nil {
				t.Fatalf("key %q should quit", key)
			}
		})
	}
}

func TestModelEmptyRegistry(t *testing.T) {
	m := NewModel("/tmp/test.lock", nil, nil)

	updated, _ := m.Update(statusMsg{status: Status{SleepKnown: true}})
	view := updated.View()

	if !strings.Contains(view, "no holders") {
		t.Errorf("view missing empty-registry notice:\n%s", view)
	}
	if !strings.Contains(view, "sleep is enabled") {
		t.Errorf("view missing sleep state:\n%s", view)
	}
}
