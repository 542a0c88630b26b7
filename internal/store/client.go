package store

import (
	"context"
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

type User struct {
	ID    string
	Email string
}

// NewTask carries the fields a user supplies when creating a task. Empty
// World and Priority fall back to the model defaults.
type NewTask struct {
	Title    string
	OwnerID  string
	World    model.World
	Priority model.Priority
	Deadline *time.Time
}

type Subscription interface {
	Unsubscribe()
}

// Client is the task store as seen by the quest log: session lifecycle,
// task persistence, and change notification. Every task operation requires
// a signed-in user.
type Client interface {
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignOut(ctx context.Context) error
	CurrentUser() *User
	OnAuthStateChange(fn func(*User)) Subscription

	ListTasks(ctx context.Context, ownerID string) ([]model.Task, error)
	CreateTask(ctx context.Context, in NewTask) (model.Task, error)
	SetCompleted(ctx context.Context, taskID string, completed bool) error
	DeleteTask(ctx context.Context, taskID string) error
	SubscribeToChanges(ownerID string, onChange func()) Subscription
}
