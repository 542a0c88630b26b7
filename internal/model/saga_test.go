package model

import "testing"

func TestSagaLabels(t *testing.T) {
	if SagaSonic.HeroLabel() != "GREEN HILL ZONE" {
		t.Fatalf("unexpected hero label: %q", SagaSonic.HeroLabel())
	}
	if SagaZelda.BadgeName() != "TRIFORCE PIECE" {
		t.Fatalf("unexpected badge name: %q", SagaZelda.BadgeName())
	}
	if got := SagaMario.TimerLabel("longBreak"); got != "CASTLE" {
		t.Fatalf("unexpected timer label: %q", got)
	}
	if got := Saga("tetris").HeroLabel(); got != "MUSHROOM KINGDOM" {
		t.Fatalf("unknown saga should fall back to mario, got %q", got)
	}
}

func TestSagaCycleAndParse(t *testing.T) {
	seen := map[Saga]bool{}
	s := DefaultSaga
	for i := 0; i < len(Sagas()); i++ {
		seen[s] = true
		s = s.Next()
	}
	if len(seen) != len(Sagas()) || s != DefaultSaga {
		t.Fatalf("saga cycle did not visit every saga once: %v", seen)
	}
	if _, err := ParseSaga("Pokemon"); err != nil {
		t.Fatalf("parse saga: %v", err)
	}
	if _, err := ParseSaga("doom"); err == nil {
		t.Fatal("expected error for unknown saga")
	}
}
