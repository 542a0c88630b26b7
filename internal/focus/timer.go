package focus

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

func Modes() []Mode {
	return []Mode{ModeWork, ModeShortBreak, ModeLongBreak}
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

func DefaultDurations() Durations {
	return Durations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

func (d Durations) For(m Mode) time.Duration {
	switch m {
	case ModeShortBreak:
		return d.ShortBreak
	case ModeLongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// Timer is a countdown over one mode. It never advances to another mode on
// its own.
type Timer struct {
	Mode         Mode
	RemainingSec int
	Running      bool

	durations Durations
}

func NewTimer(d Durations) Timer {
	t := Timer{Mode: ModeWork, durations: d}
	t.RemainingSec = t.Nominal()
	return t
}

func (t Timer) Nominal() int {
	return int(t.durations.For(t.Mode) / time.Second)
}

// Toggle starts or pauses the countdown. Starting a finished timer refills it.
func (t *Timer) Toggle() {
	if t.Running {
		t.Running = false
		return
	}
	if t.RemainingSec <= 0 {
		t.RemainingSec = t.Nominal()
	}
	t.Running = t.RemainingSec > 0
}

func (t *Timer) Reset() {
	t.Running = false
	t.RemainingSec = t.Nominal()
}

func (t *Timer) Switch(m Mode) error {
	if !m.IsValid() {
		return fmt.Errorf("focus: invalid mode %q", m)
	}
	t.Mode = m
	t.Reset()
	return nil
}

// Tick applies one elapsed second. It reports whether the timer just finished.
func (t *Timer) Tick() bool {
	if !t.Running {
		return false
	}
	if t.RemainingSec > 0 {
		t.RemainingSec--
	}
	if t.RemainingSec == 0 {
		t.Running = false
		return true
	}
	return false
}

func (t Timer) Progress() float64 {
	nominal := t.Nominal()
	if nominal <= 0 {
		return 0
	}
	p := float64(t.RemainingSec) / float64(nominal)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

func (t Timer) Clock() string {
	sec := t.RemainingSec
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
