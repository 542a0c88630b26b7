package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskquest/internal/scheduler"
	"github.com/sandeepkv93/taskquest/internal/store"
)

const authFeedBuffer = 16

func newAuthFeed(client store.Client) *authFeed {
	f := &authFeed{
		ch:   make(chan *store.User, authFeedBuffer),
		done: make(chan struct{}),
	}
	f.sub = client.OnAuthStateChange(func(u *store.User) {
		select {
		case f.ch <- u:
		case <-f.done:
		}
	})
	return f
}

func (f *authFeed) close() {
	if f == nil {
		return
	}
	f.sub.Unsubscribe()
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}

func newChangeFeed(client store.Client, ownerID string, gen uint64) *changeFeed {
	f := &changeFeed{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
		gen:  gen,
	}
	f.sub = client.SubscribeToChanges(ownerID, func() {
		select {
		case f.ch <- struct{}{}:
		default:
		}
	})
	return f
}

func (f *changeFeed) close() {
	if f == nil {
		return
	}
	f.sub.Unsubscribe()
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmMsg{Alarm: a}
	}
}

func waitForAuthCmd(f *authFeed) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case u := <-f.ch:
			return AuthChangedMsg{User: u}
		case <-f.done:
			return nil
		}
	}
}

func waitForChangeCmd(f *changeFeed) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-f.ch:
			return TasksChangedMsg{Gen: f.gen}
		case <-f.done:
			return nil
		}
	}
}

func currentUserCmd(client store.Client) tea.Cmd {
	return func() tea.Msg {
		return SessionRestoredMsg{User: client.CurrentUser()}
	}
}

func fetchTasksCmd(ctx context.Context, client store.Client, ownerID string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(ctx, ownerID)
		return TasksLoadedMsg{Seq: seq, Owner: ownerID, Tasks: tasks, Err: err}
	}
}

func signInCmd(ctx context.Context, client store.Client, signUp bool, email, password string) tea.Cmd {
	return func() tea.Msg {
		op := "sign in"
		var err error
		if signUp {
			op = "sign up"
			_, err = client.SignUp(ctx, email, password)
		} else {
			_, err = client.SignIn(ctx, email, password)
		}
		return AuthResultMsg{Op: op, Err: err}
	}
}

func signOutCmd(ctx context.Context, client store.Client) tea.Cmd {
	return func() tea.Msg {
		return AuthResultMsg{Op: "sign out", Err: client.SignOut(ctx)}
	}
}

func createTaskCmd(ctx context.Context, client store.Client, in store.NewTask) tea.Cmd {
	return func() tea.Msg {
		t, err := client.CreateTask(ctx, in)
		return MutationDoneMsg{Op: opCreate, TaskID: t.ID, Err: err}
	}
}

func setCompletedCmd(ctx context.Context, client store.Client, taskID string, completed bool) tea.Cmd {
	return func() tea.Msg {
		err := client.SetCompleted(ctx, taskID, completed)
		return MutationDoneMsg{Op: opToggle, TaskID: taskID, Completed: completed, Err: err}
	}
}

func deleteTaskCmd(ctx context.Context, client store.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		return MutationDoneMsg{Op: opDelete, TaskID: taskID, Err: client.DeleteTask(ctx, taskID)}
	}
}

func mushroomAnimationCmd(d time.Duration, token uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return MushroomCollectedMsg{Token: token}
	})
}

func focusTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return FocusTickMsg{Gen: gen}
	})
}

const (
	opCreate = "create"
	opToggle = "toggle"
	opDelete = "delete"
)
