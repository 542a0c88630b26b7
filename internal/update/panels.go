package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/taskquest/internal/commands"
	"github.com/sandeepkv93/taskquest/internal/views"
)

const maxNotifications = 40

func (m Model) renderHUD() string {
	return views.RenderHUD(views.HUDData{
		Player:      m.Saga.PlayerName(),
		Hero:        m.Saga.HeroLabel(),
		Score:       m.Progress.Score,
		Coins:       m.Progress.Completed,
		Level:       m.Filter.World.Level(),
		Lives:       m.Lives,
		Time:        m.Focus.Clock(),
		Underground: m.Underground,
	})
}

func (m Model) renderStage() string {
	return views.RenderStage(views.StageData{
		State:       string(m.Game.State()),
		Player:      m.Saga.PlayerName(),
		Underground: m.Underground,
	})
}

func (m Model) renderTaskList() string {
	items := make([]views.TaskItemData, 0, len(m.Visible))
	for i, t := range m.Visible {
		deadline := ""
		if t.Deadline != nil {
			deadline = t.Deadline.Format(commands.DeadlineLayout)
		}
		items = append(items, views.TaskItemData{
			ID:       t.ID,
			Title:    t.Title,
			Done:     t.Completed,
			Priority: string(t.Priority),
			Level:    t.World.Level(),
			Deadline: deadline,
			Selected: i == m.Cursor,
		})
	}
	return views.RenderTaskList(views.TaskListData{
		Items:       items,
		Search:      m.Filter.Search,
		World:       string(m.Filter.World),
		ByWorld:     m.Filter.ByWorld,
		CaptureView: m.captureInput.View(),
		Capturing:   m.Capturing,
		SearchView:  m.searchInput.View(),
		Searching:   m.Searching,
		Underground: m.Underground,
	})
}

func (m Model) renderTimerPanel() string {
	return views.RenderTimerPanel(views.TimerPanelData{
		Label:        m.focusLabel(),
		Mode:         string(m.Focus.Mode),
		Clock:        m.Focus.Clock(),
		ProgressView: m.timerBar.ViewAs(m.Focus.Progress()),
		Running:      m.Focus.Running,
	})
}

func (m Model) renderBadgePanel() string {
	return views.RenderBadgePanel(views.BadgePanelData{
		Name:      m.Saga.BadgeName(),
		Count:     m.Progress.Badges,
		Bonus:     m.Progress.BonusScore,
		Completed: m.Progress.Completed,
		Active:    m.Progress.Active,
	})
}

func (m Model) renderLogin() string {
	return views.RenderLogin(views.LoginData{
		Hero:         m.Saga.HeroLabel(),
		SignUp:       m.Login.SignUp,
		EmailView:    m.emailInput.View(),
		PasswordView: m.passwordInput.View(),
		Error:        m.Login.Error,
		Busy:         m.Login.Busy,
		SpinnerView:  m.loginSpinner.View(),
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return n.Title + ": " + n.Body
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}
