package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	laterID, err := engine.Schedule("later", now.Add(80*time.Millisecond))
	if err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	soonerID, err := engine.Schedule("sooner", now.Add(20*time.Millisecond))
	if err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlarm(t, engine.C(), time.Second)
	second := waitAlarm(t, engine.C(), time.Second)
	if first.ID != soonerID || second.ID != laterID {
		t.Fatalf("unexpected order: first=%d second=%d", first.ID, second.ID)
	}
	if first.Kind != "sooner" {
		t.Fatalf("unexpected kind: %q", first.Kind)
	}
}

func TestEngineCancelSuppressesAlarm(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	cancelled, err := engine.ScheduleAfter(30*time.Millisecond, "fight")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	kept, err := engine.ScheduleAfter(60*time.Millisecond, "jump")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Cancel(cancelled) {
		t.Fatal("expected cancel to find pending alarm")
	}
	if engine.Cancel(cancelled) {
		t.Fatal("second cancel must report false")
	}

	got := waitAlarm(t, engine.C(), time.Second)
	if got.ID != kept {
		t.Fatalf("expected only the kept alarm, got %d", got.ID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if _, err := engine.Schedule("tick", at); err != nil {
			t.Fatalf("schedule alarm: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alarms > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if _, err := engine.Schedule("bad", time.Time{}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Stop()
	if _, err := engine.ScheduleAfter(time.Second, "late"); !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
}

func TestManualEngineAdvance(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	engine := NewManualEngine(start)

	a, _ := engine.ScheduleAfter(3*time.Second, "fight")
	b, _ := engine.ScheduleAfter(500*time.Millisecond, "jump")
	c, _ := engine.ScheduleAfter(3*time.Second, "other")

	if due := engine.Advance(499 * time.Millisecond); len(due) != 0 {
		t.Fatalf("nothing should fire yet, got %+v", due)
	}
	due := engine.Advance(time.Millisecond)
	if len(due) != 1 || due[0].ID != b {
		t.Fatalf("expected jump alarm, got %+v", due)
	}
	due = engine.Advance(10 * time.Second)
	if len(due) != 2 || due[0].ID != a || due[1].ID != c {
		t.Fatalf("expected equal deadlines in schedule order, got %+v", due)
	}
	if got := engine.Now(); !got.Equal(start.Add(10*time.Second + 500*time.Millisecond)) {
		t.Fatalf("unexpected manual clock: %v", got)
	}
}

func waitAlarm(t *testing.T, ch <-chan Alarm, timeout time.Duration) Alarm {
	t.Helper()
	select {
	case alarm := <-ch:
		return alarm
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alarm")
		return Alarm{}
	}
}
