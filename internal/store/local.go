package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/storage"
)

const minPasswordLen = 6

type Option func(*Local)

func WithClock(now func() time.Time) Option {
	return func(l *Local) { l.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Local) { l.log = logger }
}

// WithPasswordCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithPasswordCost(cost int) Option {
	return func(l *Local) { l.cost = cost }
}

// Local is a Client backed by the SQLite repository. Sessions are persisted
// so the signed-in user survives restarts.
type Local struct {
	repo storage.Repository
	now  func() time.Time
	log  *log.Logger
	cost int
	hub  *hub

	mu      sync.RWMutex
	current *User
}

var _ Client = (*Local)(nil)

func NewLocal(ctx context.Context, repo storage.Repository, opts ...Option) (*Local, error) {
	if repo == nil {
		return nil, errors.New("store: nil repository")
	}
	l := &Local{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		log:  log.New(io.Discard),
		cost: bcrypt.DefaultCost,
		hub:  newHub(),
	}
	for _, opt := range opts {
		opt(l)
	}

	session, err := repo.CurrentSession(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return l, nil
	case err != nil:
		return nil, fmt.Errorf("store: restore session: %w", err)
	}
	user, err := repo.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("store: restore session user: %w", err)
	}
	l.current = &User{ID: user.ID, Email: user.Email}
	l.log.Debug("session restored", "user", user.Email)
	return l, nil
}

func (l *Local) SignUp(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, wrapOp("sign up", "", ErrInvalidEmail)
	}
	if len(password) < minPasswordLen {
		return nil, wrapOp("sign up", "", ErrWeakPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return nil, wrapOp("sign up", "", err)
	}
	user := storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    l.now(),
	}
	if err := l.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, wrapOp("sign up", "", ErrEmailTaken)
		}
		return nil, wrapOp("sign up", "", err)
	}
	l.log.Info("user registered", "user", email)
	return l.startSession(ctx, user)
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := l.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, wrapOp("sign in", "", ErrInvalidCredentials)
		}
		return nil, wrapOp("sign in", "", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		l.log.Warn("sign in rejected", "user", email)
		return nil, wrapOp("sign in", "", ErrInvalidCredentials)
	}
	return l.startSession(ctx, user)
}

func (l *Local) startSession(ctx context.Context, user storage.User) (*User, error) {
	session := storage.Session{ID: uuid.NewString(), UserID: user.ID, CreatedAt: l.now()}
	if err := l.repo.CreateSession(ctx, session); err != nil {
		return nil, wrapOp("start session", "", err)
	}
	u := &User{ID: user.ID, Email: user.Email}
	l.setCurrent(u)
	cp := *u
	return &cp, nil
}

func (l *Local) SignOut(ctx context.Context) error {
	u := l.CurrentUser()
	if u == nil {
		return nil
	}
	if err := l.repo.DeleteSessions(ctx, u.ID); err != nil {
		return wrapOp("sign out", "", err)
	}
	l.setCurrent(nil)
	return nil
}

func (l *Local) CurrentUser() *User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.current == nil {
		return nil
	}
	cp := *l.current
	return &cp
}

func (l *Local) OnAuthStateChange(fn func(*User)) Subscription {
	return l.hub.subscribeAuth(fn)
}

func (l *Local) setCurrent(u *User) {
	l.mu.Lock()
	l.current = u
	l.mu.Unlock()
	l.hub.notifyAuth(u)
}

// requireOwner returns the signed-in user, failing when there is none or
// when ownerID names somebody else.
func (l *Local) requireOwner(ownerID string) (*User, error) {
	u := l.CurrentUser()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	if ownerID != "" && ownerID != u.ID {
		return nil, ErrForbidden
	}
	return u, nil
}

func (l *Local) ListTasks(ctx context.Context, ownerID string) ([]model.Task, error) {
	u, err := l.requireOwner(ownerID)
	if err != nil {
		return nil, wrapOp("list tasks", "", err)
	}
	rows, err := l.repo.ListTasks(ctx, storage.TaskListFilter{OwnerID: u.ID})
	if err != nil {
		return nil, wrapOp("list tasks", "", err)
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModel(row))
	}
	return out, nil
}

func (l *Local) CreateTask(ctx context.Context, in NewTask) (model.Task, error) {
	u, err := l.requireOwner(in.OwnerID)
	if err != nil {
		return model.Task{}, wrapOp("create task", "", err)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, wrapOp("create task", "", ErrEmptyTitle)
	}
	task := model.Task{
		ID:        uuid.NewString(),
		Title:     title,
		OwnerID:   u.ID,
		World:     in.World,
		Priority:  in.Priority,
		Deadline:  in.Deadline,
		CreatedAt: l.now(),
	}
	if task.World == "" {
		task.World = model.DefaultWorld
	}
	if task.Priority == "" {
		task.Priority = model.DefaultPriority
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, wrapOp("create task", "", err)
	}
	if err := l.repo.CreateTask(ctx, fromModel(task)); err != nil {
		return model.Task{}, wrapOp("create task", task.ID, err)
	}
	l.log.Debug("task created", "task", task.ID, "world", task.World, "priority", task.Priority)
	l.hub.notifyChanges(u.ID)
	return task, nil
}

func (l *Local) SetCompleted(ctx context.Context, taskID string, completed bool) error {
	u, err := l.ownedTask(ctx, taskID)
	if err != nil {
		return wrapOp("set completed", taskID, err)
	}
	if err := l.repo.SetTaskCompleted(ctx, taskID, completed); err != nil {
		return wrapOp("set completed", taskID, err)
	}
	l.hub.notifyChanges(u.ID)
	return nil
}

func (l *Local) DeleteTask(ctx context.Context, taskID string) error {
	u, err := l.ownedTask(ctx, taskID)
	if err != nil {
		return wrapOp("delete task", taskID, err)
	}
	if err := l.repo.DeleteTask(ctx, taskID); err != nil {
		return wrapOp("delete task", taskID, err)
	}
	l.hub.notifyChanges(u.ID)
	return nil
}

func (l *Local) ownedTask(ctx context.Context, taskID string) (*User, error) {
	u, err := l.requireOwner("")
	if err != nil {
		return nil, err
	}
	row, err := l.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if row.OwnerID != u.ID {
		return nil, ErrForbidden
	}
	return u, nil
}

func (l *Local) SubscribeToChanges(ownerID string, onChange func()) Subscription {
	return l.hub.subscribeChanges(ownerID, onChange)
}

func toModel(row storage.Task) model.Task {
	return model.Task{
		ID:        row.ID,
		Title:     row.Title,
		OwnerID:   row.OwnerID,
		Completed: row.Completed,
		World:     model.World(row.World),
		Priority:  model.Priority(row.Priority),
		Deadline:  row.Deadline,
		CreatedAt: row.CreatedAt,
	}
}

func fromModel(t model.Task) storage.Task {
	return storage.Task{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Title:     t.Title,
		Completed: t.Completed,
		World:     string(t.World),
		Priority:  string(t.Priority),
		Deadline:  t.Deadline,
		CreatedAt: t.CreatedAt,
	}
}
