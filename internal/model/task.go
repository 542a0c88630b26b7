package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidWorld    = errors.New("model: invalid task world")
	ErrInvalidPriority = errors.New("model: invalid task priority")
)

type World string

const (
	WorldOverworld World = "Overworld"
	WorldCastle    World = "Castle"
	WorldPipe      World = "Pipe"
)

const DefaultWorld = WorldOverworld

func Worlds() []World {
	return []World{WorldOverworld, WorldCastle, WorldPipe}
}

func (w World) IsValid() bool {
	switch w {
	case WorldOverworld, WorldCastle, WorldPipe:
		return true
	default:
		return false
	}
}

// Level is the stage label shown in the HUD for a world.
func (w World) Level() string {
	switch w {
	case WorldCastle:
		return "8-4"
	case WorldPipe:
		return "4-2"
	default:
		return "1-1"
	}
}

func (w World) Next() World {
	all := Worlds()
	for i, item := range all {
		if item == w {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultWorld
}

func ParseWorld(raw string) (World, error) {
	for _, w := range Worlds() {
		if strings.EqualFold(strings.TrimSpace(raw), string(w)) {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWorld, raw)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const DefaultPriority = PriorityMedium

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for display: high first, low last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Task struct {
	ID        string
	Title     string
	OwnerID   string
	Completed bool
	World     World
	Priority  Priority
	Deadline  *time.Time
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if strings.TrimSpace(t.OwnerID) == "" {
		return errors.New("model: task owner is required")
	}
	if !t.World.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWorld, t.World)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// AllCompleted reports whether tasks is non-empty and every task is done.
func AllCompleted(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}
