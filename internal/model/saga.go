package model

import (
	"fmt"
	"strings"
)

// Saga selects the retro-game theme used for labels across the HUD.
type Saga string

const (
	SagaMario   Saga = "mario"
	SagaPacman  Saga = "pacman"
	SagaSonic   Saga = "sonic"
	SagaPokemon Saga = "pokemon"
	SagaZelda   Saga = "zelda"
)

const DefaultSaga = SagaMario

type sagaLabels struct {
	hero   string
	badge  string
	player string
	timer  map[string]string
}

var sagas = map[Saga]sagaLabels{
	SagaMario: {
		hero:   "MUSHROOM KINGDOM",
		badge:  "INVINCIBILITY STAR",
		player: "MARIO",
		timer:  map[string]string{"work": "QUEST", "shortBreak": "PAUSE", "longBreak": "CASTLE"},
	},
	SagaPacman: {
		hero:   "ARCADE MAZE",
		badge:  "GHOST HUNTER",
		player: "PAC-MAN",
		timer:  map[string]string{"work": "CHASE", "shortBreak": "COFFEE", "longBreak": "ARCADE"},
	},
	SagaSonic: {
		hero:   "GREEN HILL ZONE",
		badge:  "CHAOS EMERALD",
		player: "SONIC",
		timer:  map[string]string{"work": "DASH", "shortBreak": "REST", "longBreak": "CHILL"},
	},
	SagaPokemon: {
		hero:   "PALLET TOWN",
		badge:  "GYM BADGE",
		player: "TRAINER",
		timer:  map[string]string{"work": "TRAIN", "shortBreak": "HEAL", "longBreak": "PC BOX"},
	},
	SagaZelda: {
		hero:   "HYRULE FIELD",
		badge:  "TRIFORCE PIECE",
		player: "LINK",
		timer:  map[string]string{"work": "EXPLORE", "shortBreak": "CAMP", "longBreak": "SHRINE"},
	},
}

func Sagas() []Saga {
	return []Saga{SagaMario, SagaPacman, SagaSonic, SagaPokemon, SagaZelda}
}

func (s Saga) IsValid() bool {
	_, ok := sagas[s]
	return ok
}

func (s Saga) labels() sagaLabels {
	if l, ok := sagas[s]; ok {
		return l
	}
	return sagas[DefaultSaga]
}

func (s Saga) HeroLabel() string  { return s.labels().hero }
func (s Saga) BadgeName() string  { return s.labels().badge }
func (s Saga) PlayerName() string { return s.labels().player }

// TimerLabel returns the themed name of a countdown mode, or "" when the
// saga has none for it.
func (s Saga) TimerLabel(mode string) string {
	return s.labels().timer[mode]
}

func (s Saga) Next() Saga {
	all := Sagas()
	for i, item := range all {
		if item == s {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultSaga
}

func ParseSaga(raw string) (Saga, error) {
	s := Saga(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("model: unknown saga %q", raw)
	}
	return s, nil
}
