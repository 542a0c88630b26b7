package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskquest/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		typeInto(&m.commandInput, msg)
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
}

func (m *Model) openPalette() {
	m.Palette = PaletteState{Active: true}
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
}

func (m *Model) closePalette() {
	m.Palette = PaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var out tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.User == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "sign in to add missions"}
			}
			out = m.addTask(a)
			return commands.Result{Message: fmt.Sprintf("new mission: %s", a.Title)}, nil
		},
		World: func(w commands.WorldArgs) (commands.Result, error) {
			m.setWorld(w.World)
			return commands.Result{Message: fmt.Sprintf("warped to %s (%s)", w.World, w.World.Level())}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.setSearch(s.Query)
			m.searchInput.SetValue(m.Filter.Search)
			if m.Filter.Search == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", m.Filter.Search)}, nil
		},
		Saga: func(s commands.SagaArgs) (commands.Result, error) {
			m.Saga = s.Saga
			return commands.Result{Message: fmt.Sprintf("saga: %s", s.Saga.HeroLabel())}, nil
		},
		Timer: func(t commands.TimerArgs) (commands.Result, error) {
			switch t.Action {
			case commands.TimerToggle:
				m, out = m.toggleFocus()
			case commands.TimerReset:
				m.resetFocus()
			case commands.TimerSwitch:
				m.switchFocus(t.Mode)
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, out
}
