package game

import (
	"time"

	"github.com/sandeepkv93/taskquest/internal/model"
)

type State string

const (
	StateIdle          State = "idle"
	StateRunning       State = "running"
	StateJumping       State = "jumping"
	StateFighting      State = "fighting"
	StateVictory       State = "victory"
	StateMushroomSpawn State = "mushroom-spawn"
)

// Transient states hold only until their alarm fires or, for mushroom-spawn,
// until the animation reports completion.
func (s State) Transient() bool {
	return s == StateJumping || s == StateMushroomSpawn
}

// Alarms is the subset of the scheduler the machine needs.
type Alarms interface {
	ScheduleAfter(d time.Duration, kind string) (uint64, error)
	Cancel(id uint64) bool
}

type Timings struct {
	FightDwell time.Duration
	Jump       time.Duration
	Mushroom   time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		FightDwell: 3 * time.Second,
		Jump:       500 * time.Millisecond,
		Mushroom:   2 * time.Second,
	}
}

// Machine derives the hero's presentation state. It owns at most one armed
// alarm, and every transition cancels it before arming the next.
type Machine struct {
	alarms  Alarms
	timings Timings
	state   State
	armed   uint64
	allDone bool
}

func NewMachine(alarms Alarms, timings Timings) *Machine {
	return &Machine{alarms: alarms, timings: timings, state: StateIdle}
}

func (m *Machine) State() State { return m.state }

// Armed returns the id of the pending alarm, or 0.
func (m *Machine) Armed() uint64 { return m.armed }

func (m *Machine) TasksChanged(tasks []model.Task) {
	m.allDone = model.AllCompleted(tasks)
	if m.allDone {
		if m.state == StateFighting || m.state == StateVictory {
			return
		}
		m.enter(StateFighting)
		return
	}
	if m.state.Transient() || m.state == StateRunning {
		return
	}
	m.enter(StateRunning)
}

// TaskAdded starts a jump. A freshly added task is open, so the jump lands in
// running even if the refetch has not arrived yet.
func (m *Machine) TaskAdded() {
	m.allDone = false
	m.enter(StateJumping)
}

// TaskCompleted reacts to a false->true toggle.
func (m *Machine) TaskCompleted() {
	m.enter(StateMushroomSpawn)
}

// MushroomCollected is the animation-complete signal from the view.
func (m *Machine) MushroomCollected() bool {
	if m.state != StateMushroomSpawn {
		return false
	}
	m.settle()
	return true
}

// Expire handles a fired alarm. Alarms other than the armed one are stale
// and ignored.
func (m *Machine) Expire(id uint64) bool {
	if id == 0 || id != m.armed {
		return false
	}
	m.armed = 0
	m.fire()
	return true
}

// Reset returns to idle, as on sign-out.
func (m *Machine) Reset() {
	m.disarm()
	m.allDone = false
	m.state = StateIdle
}

// Stop releases the pending alarm without changing state.
func (m *Machine) Stop() {
	m.disarm()
}

func (m *Machine) fire() {
	switch m.state {
	case StateFighting:
		m.enter(StateVictory)
	case StateJumping, StateMushroomSpawn:
		m.settle()
	}
}

func (m *Machine) settle() {
	if m.allDone {
		m.enter(StateFighting)
		return
	}
	m.enter(StateRunning)
}

func (m *Machine) enter(next State) {
	m.disarm()
	m.state = next

	var d time.Duration
	switch next {
	case StateFighting:
		d = m.timings.FightDwell
	case StateJumping:
		d = m.timings.Jump
	case StateMushroomSpawn:
		d = m.timings.Mushroom
	default:
		return
	}
	if m.alarms == nil {
		m.fire()
		return
	}
	id, err := m.alarms.ScheduleAfter(d, string(next))
	if err != nil {
		// No clock to wait on; complete the transition now.
		m.fire()
		return
	}
	m.armed = id
}

func (m *Machine) disarm() {
	if m.armed == 0 {
		return
	}
	if m.alarms != nil {
		m.alarms.Cancel(m.armed)
	}
	m.armed = 0
}
