package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/game"
	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/store"
)

// onAuthChanged moves between the login and game screens. A repeated
// notification for the same user is ignored.
func (m Model) onAuthChanged(u *store.User) (Model, tea.Cmd) {
	if u == nil {
		if m.User == nil {
			return m, nil
		}
		m.logger.Info("signed out", "user", m.User.Email)
		m.endSession()
		m.Screen = ScreenLogin
		m.Status = StatusBar{Text: "signed out"}
		return m, nil
	}
	if m.User != nil && m.User.ID == u.ID {
		return m, nil
	}
	m.endSession()
	m.User = u
	m.Screen = ScreenGame
	m.Lives = m.cfg.StartingLives
	m.Login = LoginState{SignUp: m.Login.SignUp}
	m.emailInput.SetValue("")
	m.passwordInput.SetValue("")
	m.logger.Info("signed in", "user", u.Email)
	m.Status = StatusBar{Text: fmt.Sprintf("welcome, %s", u.Email)}

	m.feedGen++
	m.changes = newChangeFeed(m.client, u.ID, m.feedGen)
	return m, tea.Batch(waitForChangeCmd(m.changes), m.requestRefresh())
}

// endSession drops everything tied to the signed-in user. Fetches still in
// flight are invalidated by bumping the refresh sequence.
func (m *Model) endSession() {
	m.changes.close()
	m.changes = nil
	m.User = nil
	m.Tasks = nil
	m.Visible = nil
	m.Cursor = 0
	m.Capturing = false
	m.Searching = false
	m.refresh = refreshState{seq: m.refresh.seq + 1}
	m.mushroom++
	m.Game.Reset()
	m.recompute()
}

// requestRefresh starts a fetch, or marks one as queued when a fetch is
// already running.
func (m *Model) requestRefresh() tea.Cmd {
	if m.User == nil || m.client == nil {
		return nil
	}
	if m.refresh.inFlight {
		m.refresh.queued = true
		return nil
	}
	m.refresh.inFlight = true
	m.refresh.seq++
	return fetchTasksCmd(m.ctx, m.client, m.User.ID, m.refresh.seq)
}

func (m Model) onTasksLoaded(msg TasksLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.refresh.seq || m.User == nil || msg.Owner != m.User.ID {
		return m, nil
	}
	m.refresh.inFlight = false
	if msg.Err != nil {
		m.logger.Warn("task fetch failed", "err", msg.Err)
		m.Status = StatusBar{Text: fmt.Sprintf("could not load missions: %v", msg.Err), IsError: true}
	} else {
		m.Tasks = msg.Tasks
		m.recompute()
		m.Game.TasksChanged(m.Tasks)
	}
	if m.refresh.queued {
		m.refresh.queued = false
		return m, m.requestRefresh()
	}
	return m, nil
}

func (m Model) onTasksChanged(msg TasksChangedMsg) (Model, tea.Cmd) {
	if m.changes == nil || msg.Gen != m.changes.gen {
		return m, nil
	}
	return m, tea.Batch(m.requestRefresh(), waitForChangeCmd(m.changes))
}

// onMutationDone reacts to a finished store write. Failed writes leave the
// UI untouched apart from a log line; the follow-up fetch restores truth.
func (m Model) onMutationDone(msg MutationDoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("mutation failed", "op", msg.Op, "task", msg.TaskID, "err", msg.Err)
		if errors.Is(msg.Err, store.ErrNotAuthenticated) {
			m.Status = StatusBar{Text: "session expired, please sign in again", IsError: true}
		}
		return m, m.requestRefresh()
	}
	var cmds []tea.Cmd
	switch msg.Op {
	case opCreate:
		m.Game.TaskAdded()
	case opToggle:
		if msg.Completed {
			m.Game.TaskCompleted()
			m.mushroom++
			cmds = append(cmds, mushroomAnimationCmd(m.cfg.MushroomAnimation(), m.mushroom))
		}
	}
	cmds = append(cmds, m.requestRefresh())
	return m, tea.Batch(cmds...)
}

func (m Model) onMushroomCollected(msg MushroomCollectedMsg) Model {
	if msg.Token != m.mushroom {
		return m
	}
	m.Game.MushroomCollected()
	return m
}

// recompute derives the visible list and score from Tasks.
func (m *Model) recompute() {
	m.Visible = game.Visible(m.Tasks, m.Filter)
	m.Progress = game.Compute(m.Tasks, m.cfg.PointsPerTask)
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return model.Task{}, false
	}
	return m.Visible[m.Cursor], true
}

// addTask creates a quest in the current world unless the args name one.
// A blank title is a no-op.
func (m *Model) addTask(a commands.AddArgs) tea.Cmd {
	title := strings.TrimSpace(a.Title)
	if title == "" || m.User == nil || m.client == nil {
		return nil
	}
	world := a.World
	if world == "" {
		world = m.Filter.World
	}
	return createTaskCmd(m.ctx, m.client, store.NewTask{
		Title:    title,
		OwnerID:  m.User.ID,
		World:    world,
		Priority: a.Priority,
		Deadline: a.Deadline,
	})
}

func (m *Model) toggleSelected() tea.Cmd {
	t, ok := m.selectedTask()
	if !ok || m.client == nil {
		return nil
	}
	return setCompletedCmd(m.ctx, m.client, t.ID, !t.Completed)
}

func (m *Model) deleteSelected() tea.Cmd {
	t, ok := m.selectedTask()
	if !ok || m.client == nil {
		return nil
	}
	return deleteTaskCmd(m.ctx, m.client, t.ID)
}

func (m *Model) setWorld(w model.World) {
	m.Filter.World = w
	m.Cursor = 0
	m.recompute()
}

func (m *Model) setSearch(q string) {
	m.Filter.Search = strings.TrimSpace(q)
	m.Cursor = 0
	m.recompute()
}

func (m *Model) moveCursor(delta int) {
	if len(m.Visible) == 0 {
		m.Cursor = 0
		return
	}
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
}
