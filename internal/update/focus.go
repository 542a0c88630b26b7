package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskquest/internal/focus"
)

func (m Model) handleFocusKey(keyStr string) (Model, tea.Cmd) {
	switch keyStr {
	case "p":
		return m.toggleFocus()
	case "r":
		m.resetFocus()
	case "m":
		m.switchFocus(nextMode(m.Focus.Mode))
	}
	return m, nil
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	m.Focus.Toggle()
	m.focusGen++
	if !m.Focus.Running {
		m.Status = StatusBar{Text: fmt.Sprintf("%s paused", m.focusLabel())}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s running", m.focusLabel())}
	return m, focusTickCmd(m.focusGen)
}

func (m *Model) resetFocus() {
	m.Focus.Reset()
	m.focusGen++
	m.Status = StatusBar{Text: fmt.Sprintf("%s reset", m.focusLabel())}
}

func (m *Model) switchFocus(mode focus.Mode) {
	if err := m.Focus.Switch(mode); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.focusGen++
	m.Status = StatusBar{Text: fmt.Sprintf("timer mode: %s", m.focusLabel())}
}

// onFocusTick ignores ticks from a chain that a pause, reset or mode switch
// has since superseded.
func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	if msg.Gen != m.focusGen || !m.Focus.Running {
		return m, nil
	}
	if m.Focus.Tick() {
		m.Status = StatusBar{Text: fmt.Sprintf("%s complete!", m.focusLabel())}
		m.notify("Timer", fmt.Sprintf("%s finished", m.focusLabel()), "info")
		return m, nil
	}
	return m, focusTickCmd(m.focusGen)
}

func (m Model) focusLabel() string {
	return m.Saga.TimerLabel(string(m.Focus.Mode))
}

func nextMode(cur focus.Mode) focus.Mode {
	modes := focus.Modes()
	for i, mode := range modes {
		if mode == cur {
			return modes[(i+1)%len(modes)]
		}
	}
	return focus.ModeWork
}
