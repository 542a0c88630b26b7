package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.alarms != nil {
		cmds = append(cmds, waitForAlarmCmd(m.alarms.C()))
	}
	if m.client != nil {
		cmds = append(cmds, waitForAuthCmd(m.auth), currentUserCmd(m.client))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case AuthChangedMsg:
		next, cmd := m.onAuthChanged(typed.User)
		return next, tea.Batch(cmd, waitForAuthCmd(next.auth))
	case SessionRestoredMsg:
		return m.onAuthChanged(typed.User)
	case AuthResultMsg:
		m.Login.Busy = false
		if typed.Err != nil {
			m.logger.Warn("auth failed", "op", typed.Op, "err", typed.Err)
			if m.Screen == ScreenLogin {
				m.Login.Error = authErrorText(typed.Err)
			} else {
				m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			}
		}
		return m, nil
	case TasksLoadedMsg:
		return m.onTasksLoaded(typed)
	case TasksChangedMsg:
		return m.onTasksChanged(typed)
	case MutationDoneMsg:
		return m.onMutationDone(typed)
	case AlarmMsg:
		if m.Game.Expire(typed.Alarm.ID) {
			m.logger.Debug("alarm fired", "kind", typed.Alarm.Kind, "state", m.Game.State())
		}
		if m.alarms != nil {
			return m, waitForAlarmCmd(m.alarms.C())
		}
		return m, nil
	case MushroomCollectedMsg:
		return m.onMushroomCollected(typed), nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case spinner.TickMsg:
		if !m.Login.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.loginSpinner, cmd = m.loginSpinner.Update(typed)
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.logger.Error("app error", "err", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	switch m.Screen {
	case ScreenLogin:
		return m.handleLoginKey(msg)
	case ScreenGameOver:
		return m.handleGameOverKey(keyStr)
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Capturing {
		return m.handleCaptureKey(msg)
	}
	if m.Searching {
		return m.handleSearchKey(msg)
	}

	switch keyStr {
	case "q":
		return m.quit()
	case "/":
		m.openPalette()
		return m, nil
	case "?":
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "a":
		m.Capturing = true
		m.captureInput.SetValue("")
		m.captureInput.Focus()
		return m, nil
	case "s":
		m.Searching = true
		m.searchInput.SetValue(m.Filter.Search)
		m.searchInput.Focus()
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case " ", "x", "enter":
		return m, m.toggleSelected()
	case "d":
		return m, m.deleteSelected()
	case "w":
		m.setWorld(m.Filter.World.Next())
		m.Status = StatusBar{Text: fmt.Sprintf("warped to WORLD %s", m.Filter.World.Level())}
		return m, nil
	case "t":
		m.Underground = !m.Underground
		return m, nil
	case "S":
		m.Saga = m.Saga.Next()
		m.Status = StatusBar{Text: fmt.Sprintf("saga: %s", m.Saga.HeroLabel())}
		return m, nil
	case "g":
		if m.Lives > 0 {
			m.Lives--
		}
		m.Screen = ScreenGameOver
		return m, nil
	case "L":
		if m.client == nil {
			return m, nil
		}
		return m, signOutCmd(m.ctx, m.client)
	case "p", "r", "m":
		return m.handleFocusKey(keyStr)
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Capturing = false
		m.captureInput.Blur()
		return m, nil
	case "enter":
		raw := m.captureInput.Value()
		m.Capturing = false
		m.captureInput.SetValue("")
		m.captureInput.Blur()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}
		args, err := commands.ParseAdd(raw)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		return m, m.addTask(args)
	default:
		typeInto(&m.captureInput, msg)
		return m, nil
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Searching = false
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.setSearch("")
		return m, nil
	case "enter":
		m.Searching = false
		m.searchInput.Blur()
		return m, nil
	default:
		typeInto(&m.searchInput, msg)
		m.setSearch(m.searchInput.Value())
		return m, nil
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Login.Error = ""
		return m, nil
	case "ctrl+s":
		m.Login.SignUp = !m.Login.SignUp
		m.Login.Error = ""
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.focusLoginField(1 - m.Login.field)
		return m, nil
	case "enter":
		if m.Login.Busy || m.client == nil {
			return m, nil
		}
		if m.Login.field == fieldEmail {
			m.focusLoginField(fieldPassword)
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.Login.Error = "email and password are required"
			return m, nil
		}
		m.Login.Busy = true
		m.Login.Error = ""
		return m, tea.Batch(signInCmd(m.ctx, m.client, m.Login.SignUp, email, password), m.loginSpinner.Tick)
	}
	if m.Login.field == fieldPassword {
		typeInto(&m.passwordInput, msg)
	} else {
		typeInto(&m.emailInput, msg)
	}
	return m, nil
}

func (m *Model) focusLoginField(f loginField) {
	m.Login.field = f
	if f == fieldPassword {
		m.emailInput.Blur()
		m.passwordInput.Focus()
		return
	}
	m.passwordInput.Blur()
	m.emailInput.Focus()
}

func (m Model) handleGameOverKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "q":
		return m.quit()
	case "c", "enter":
		if m.Lives <= 0 {
			m.Lives = m.cfg.StartingLives
		}
		m.Screen = ScreenGame
		m.Status = StatusBar{Text: "continue!"}
	}
	return m, nil
}

// quit releases the armed alarm and every subscription before exiting.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Game.Stop()
	m.focusGen++
	m.changes.close()
	m.auth.close()
	return m, tea.Quit
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	var left, right string
	footer := ""
	switch m.Screen {
	case ScreenLogin:
		left = m.renderLogin()
	case ScreenGameOver:
		left = views.RenderGameOver(views.GameOverData{Score: m.Progress.Score, Lives: m.Lives})
	default:
		left = strings.Join([]string{m.renderHUD(), m.renderStage(), m.renderTaskList()}, "\n\n")
		panes := []string{m.renderTimerPanel(), m.renderBadgePanel()}
		if p := m.renderCommandPalette(); p != "" {
			panes = append(panes, p)
		}
		if m.HelpVisible {
			panes = append(panes, m.renderHelpView())
		}
		right = strings.Join(panes, "\n\n")
		footer = m.shortHelp()
	}

	header := "taskquest"
	if m.User != nil {
		header = fmt.Sprintf("taskquest | %s | %s", m.User.Email, m.Saga.HeroLabel())
	}
	return views.RenderApp(views.AppData{
		Header:        header,
		LeftPane:      left,
		RightPane:     right,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer:        footer,
		Underground:   m.Underground,
	})
}
