package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/taskquest/internal/model"
	"github.com/sandeepkv93/taskquest/internal/scheduler"
)

type harness struct {
	engine  *scheduler.Engine
	machine *Machine
}

func newHarness() *harness {
	engine := scheduler.NewManualEngine(base)
	return &harness{engine: engine, machine: NewMachine(engine, DefaultTimings())}
}

// advance moves the simulated clock and delivers due alarms to the machine.
func (h *harness) advance(d time.Duration) {
	for _, alarm := range h.engine.Advance(d) {
		h.machine.Expire(alarm.ID)
	}
}

func open(id string) model.Task { return model.Task{ID: id} }
func done(id string) model.Task { return model.Task{ID: id, Completed: true} }

func TestMachineEmptySetRuns(t *testing.T) {
	h := newHarness()
	require.Equal(t, StateIdle, h.machine.State())

	h.machine.TasksChanged(nil)
	assert.Equal(t, StateRunning, h.machine.State())
	assert.Zero(t, h.machine.Armed())
}

func TestMachineAllCompletedFightsThenWins(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{done("a"), done("b")})
	require.Equal(t, StateFighting, h.machine.State())

	h.advance(3*time.Second - time.Millisecond)
	assert.Equal(t, StateFighting, h.machine.State())

	h.advance(time.Millisecond)
	assert.Equal(t, StateVictory, h.machine.State())
	assert.Zero(t, h.engine.Pending())
}

func TestMachineFightDwellNotRearmedByRefresh(t *testing.T) {
	h := newHarness()
	tasks := []model.Task{done("a")}
	h.machine.TasksChanged(tasks)
	armed := h.machine.Armed()

	h.advance(2 * time.Second)
	h.machine.TasksChanged(tasks)
	assert.Equal(t, armed, h.machine.Armed())

	h.advance(time.Second)
	assert.Equal(t, StateVictory, h.machine.State())
}

func TestMachineVictoryHoldsUntilNewOpenTask(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{done("a")})
	h.advance(3 * time.Second)
	require.Equal(t, StateVictory, h.machine.State())

	h.machine.TasksChanged([]model.Task{done("a")})
	assert.Equal(t, StateVictory, h.machine.State())

	h.machine.TasksChanged([]model.Task{open("b"), done("a")})
	assert.Equal(t, StateRunning, h.machine.State())
}

func TestMachineLeavingFightCancelsDwell(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{done("a")})
	stale := h.machine.Armed()
	require.NotZero(t, stale)

	h.machine.TasksChanged([]model.Task{open("a")})
	require.Equal(t, StateRunning, h.machine.State())
	assert.Zero(t, h.engine.Pending(), "dwell alarm must be cancelled on exit")

	assert.False(t, h.machine.Expire(stale), "stale alarm must be ignored")
	h.advance(10 * time.Second)
	assert.Equal(t, StateRunning, h.machine.State())
}

func TestMachineJumpOnAddThenRuns(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{open("a")})

	h.machine.TaskAdded()
	require.Equal(t, StateJumping, h.machine.State())

	h.machine.TasksChanged([]model.Task{open("b"), open("a")})
	assert.Equal(t, StateJumping, h.machine.State(), "refresh must not cut the jump short")

	h.advance(500 * time.Millisecond)
	assert.Equal(t, StateRunning, h.machine.State())
}

func TestMachineJumpFromVictoryLandsRunning(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{done("a")})
	h.advance(3 * time.Second)
	require.Equal(t, StateVictory, h.machine.State())

	h.machine.TaskAdded()
	require.Equal(t, StateJumping, h.machine.State())

	// The refetch with the new open task has not arrived yet.
	h.advance(500 * time.Millisecond)
	assert.Equal(t, StateRunning, h.machine.State())
	assert.Zero(t, h.engine.Pending(), "no fight dwell may be armed")
}

func TestMachineMushroomThenCollected(t *testing.T) {
	h := newHarness()
	tasks := []model.Task{open("a"), open("b")}
	h.machine.TasksChanged(tasks)
	before := Compute(tasks, DefaultPointsPerTask).Score

	tasks[0].Completed = true
	h.machine.TaskCompleted()
	require.Equal(t, StateMushroomSpawn, h.machine.State())
	h.machine.TasksChanged(tasks)
	assert.Equal(t, StateMushroomSpawn, h.machine.State())

	assert.True(t, h.machine.MushroomCollected())
	assert.Equal(t, StateRunning, h.machine.State())
	assert.Zero(t, h.engine.Pending(), "fallback alarm must be released")
	assert.Equal(t, before+DefaultPointsPerTask, Compute(tasks, DefaultPointsPerTask).Score)

	assert.False(t, h.machine.MushroomCollected(), "late signal is ignored outside mushroom-spawn")
}

func TestMachineMushroomBoundedWithoutSignal(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{open("a"), open("b")})
	h.machine.TaskCompleted()

	h.advance(2 * time.Second)
	assert.Equal(t, StateRunning, h.machine.State())
}

func TestMachineLastCompletionFightsImmediately(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{open("a")})
	h.machine.TaskCompleted()
	h.machine.TasksChanged([]model.Task{done("a")})
	require.Equal(t, StateFighting, h.machine.State())
	assert.Equal(t, 1, h.engine.Pending())

	h.advance(3 * time.Second)
	assert.Equal(t, StateVictory, h.machine.State())
}

func TestMachineSingleArmedAlarm(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{open("a")})
	for i := 0; i < 5; i++ {
		h.machine.TaskAdded()
		h.machine.TaskCompleted()
	}
	assert.Equal(t, 1, h.engine.Pending())
}

func TestMachineResetAndStop(t *testing.T) {
	h := newHarness()
	h.machine.TasksChanged([]model.Task{done("a")})
	h.machine.Stop()
	assert.Zero(t, h.engine.Pending())
	assert.Equal(t, StateFighting, h.machine.State())

	h.machine.Reset()
	assert.Equal(t, StateIdle, h.machine.State())
	assert.Zero(t, h.machine.Armed())
}

type failingAlarms struct{}

func (failingAlarms) ScheduleAfter(time.Duration, string) (uint64, error) {
	return 0, errors.New("no clock")
}
func (failingAlarms) Cancel(uint64) bool { return false }

func TestMachineWithoutClockCompletesTransitions(t *testing.T) {
	m := NewMachine(failingAlarms{}, DefaultTimings())
	m.TasksChanged([]model.Task{done("a")})
	assert.Equal(t, StateVictory, m.State())

	m.TasksChanged([]model.Task{open("b")})
	m.TaskAdded()
	assert.Equal(t, StateRunning, m.State())
}
