package storage

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

type Task struct {
	ID        string
	OwnerID   string
	Title     string
	Completed bool
	World     string
	Priority  string
	Deadline  *time.Time
	CreatedAt time.Time
}

type TaskListFilter struct {
	OwnerID string
}
