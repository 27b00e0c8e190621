package pacing

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestControllerRunsWork(t *testing.T) {
	c := New()
	c.SetPace(1)
	var runs atomic.Int64
	c.Start(func() { runs.Add(1) })
	defer c.Stop()

	if c.Status() != Executing {
		t.Fatalf("expected executing after start, got %v", c.Status())
	}
	waitFor(t, "work runs", func() bool { return runs.Load() >= 5 })
}

func TestControllerPauseStopsWork(t *testing.T) {
	c := New()
	var runs atomic.Int64
	c.Start(func() { runs.Add(1) })
	defer c.Stop()

	waitFor(t, "first run", func() bool { return runs.Load() > 0 })
	if got := c.TogglePause(); got != Paused {
		t.Fatalf("expected paused, got %v", got)
	}
	// one run may already be in flight when the status flips
	time.Sleep(10 * time.Millisecond)
	frozen := runs.Load()
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != frozen {
		t.Fatalf("work ran while paused: %d -> %d", frozen, runs.Load())
	}

	if got := c.TogglePause(); got != Executing {
		t.Fatalf("expected executing, got %v", got)
	}
	waitFor(t, "work resumes", func() bool { return runs.Load() > frozen })
}

func TestControllerStopIsTerminal(t *testing.T) {
	c := New()
	var runs atomic.Int64
	c.Start(func() { runs.Add(1) })
	c.Stop()

	c.SetStatus(Executing)
	if got := c.TogglePause(); got != Aborted {
		t.Fatalf("toggle left aborted state: %v", got)
	}
	if c.Status() != Aborted {
		t.Fatalf("status changed after stop: %v", c.Status())
	}

	time.Sleep(10 * time.Millisecond)
	frozen := runs.Load()
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != frozen {
		t.Fatalf("work ran after stop")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic restarting an aborted controller")
		}
	}()
	c.Start(func() {})
}

func TestControllerStartTwicePanics(t *testing.T) {
	c := New()
	var runs atomic.Int64
	c.Start(func() { runs.Add(1) })
	defer c.Stop()
	c.TogglePause()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic starting a running controller")
		}
		if c.Status() != Paused {
			t.Fatalf("failed start changed the status to %v", c.Status())
		}
	}()
	c.Start(func() { runs.Add(1) })
}

func TestControllerSetPace(t *testing.T) {
	c := New()
	c.SetPace(-5)
	if c.Pace() != 0 {
		t.Fatalf("negative pace should clamp to 0, got %d", c.Pace())
	}
	c.SetPace(500)
	if c.Pace() != 500 {
		t.Fatalf("expected 500, got %d", c.Pace())
	}
}

func TestPulserRaisesFlag(t *testing.T) {
	p := NewPulser(1)
	if p.Take() {
		t.Fatalf("flag raised before start")
	}
	p.Start()
	defer p.Stop()

	waitFor(t, "pulse", p.Take)
	p.Control().SetStatus(Paused)
	time.Sleep(10 * time.Millisecond)
	p.Take()
	time.Sleep(10 * time.Millisecond)
	if p.Take() {
		t.Fatalf("flag raised while paused")
	}
}
