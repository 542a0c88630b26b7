package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Rescue the princess",
		OwnerID:   "user-1",
		World:     WorldCastle,
		Priority:  PriorityHigh,
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresTitle(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Title:     "   ",
		OwnerID:   "user-1",
		World:     DefaultWorld,
		Priority:  DefaultPriority,
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	err := task.Validate()
	if err == nil || err.Error() != "model: task title is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Title:     "Bad world",
		OwnerID:   "user-1",
		World:     World("Sky"),
		Priority:  PriorityLow,
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); !errors.Is(err, ErrInvalidWorld) {
		t.Fatalf("expected ErrInvalidWorld, got: %v", err)
	}

	task.World = WorldPipe
	task.Priority = Priority("urgent")
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestPriorityRankOrdersHighFirst(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Fatalf("unexpected ranks: high=%d medium=%d low=%d", PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
}

func TestParsePriorityAndWorld(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	if err != nil || p != PriorityHigh {
		t.Fatalf("parse priority: got %q, %v", p, err)
	}
	if _, err := ParsePriority("asap"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	w, err := ParseWorld("castle")
	if err != nil || w != WorldCastle {
		t.Fatalf("parse world: got %q, %v", w, err)
	}
	if _, err := ParseWorld("moon"); !errors.Is(err, ErrInvalidWorld) {
		t.Fatalf("expected ErrInvalidWorld, got %v", err)
	}
}

func TestWorldLevelsAndCycle(t *testing.T) {
	cases := map[World]string{WorldOverworld: "1-1", WorldCastle: "8-4", WorldPipe: "4-2"}
	for w, want := range cases {
		if got := w.Level(); got != want {
			t.Fatalf("%s level = %s, want %s", w, got, want)
		}
	}
	if WorldPipe.Next() != WorldOverworld {
		t.Fatalf("expected world cycle to wrap to overworld")
	}
}

func TestAllCompleted(t *testing.T) {
	if AllCompleted(nil) {
		t.Fatal("empty set must not count as all completed")
	}
	tasks := []Task{{Completed: true}, {Completed: false}}
	if AllCompleted(tasks) {
		t.Fatal("expected false with an open task")
	}
	tasks[1].Completed = true
	if !AllCompleted(tasks) {
		t.Fatal("expected true when every task is done")
	}
}
