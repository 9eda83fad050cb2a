package browser

import (
	"testing"
	"time"
)

func TestDebouncerRunsOnlyLastOfBurst(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(clock, 500*time.Millisecond)

	var got []string
	for _, q := range []string{"c", "ch", "che", "chess"} {
		q := q
		d.Schedule(func() { got = append(got, q) })
		clock.Advance(100 * time.Millisecond)
	}
	if len(got) != 0 {
		t.Fatalf("ran before the delay elapsed: %v", got)
	}
	if !d.Pending() {
		t.Fatal("expected a pending task")
	}

	clock.Advance(500 * time.Millisecond)
	if len(got) != 1 || got[0] != "chess" {
		t.Fatalf("got %v, want [chess]", got)
	}
	if d.Pending() {
		t.Error("task should no longer be pending")
	}
}

func TestDebouncerCancel(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(clock, time.Second)

	ran := false
	d.Schedule(func() { ran = true })
	d.Cancel()
	clock.Advance(2 * time.Second)

	if ran {
		t.Error("cancelled task ran")
	}
}

func TestDebouncerDropsSupersededFire(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(clock, time.Second)

	var got []int
	d.Schedule(func() { got = append(got, 1) })
	// Capture the first timer's callback as if it had already fired
	// before Stop could win.
	clock.mu.Lock()
	first := clock.timers[0].f
	clock.mu.Unlock()

	d.Schedule(func() { got = append(got, 2) })
	first()
	clock.Advance(time.Second)

	if len(got) != 1 || got[0] != 2 {
		t.Errorf("got %v, want [2]", got)
	}
}
