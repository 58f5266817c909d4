package session

import (
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

func TestTickerDeliversResultOnce(t *testing.T) {
	s := newSession(t, "abc", timeSettings(model.ModeNormal, 1))
	s.HandleKey(RuneKey('a'), t0)

	events := make(chan TickEvent, 16)
	tk := NewTicker(s, time.Millisecond, func(ev TickEvent) { events <- ev })
	tk.SetClock(func() time.Time { return t0.Add(2 * time.Second) })
	tk.Start()
	tk.Start()

	select {
	case ev := <-events:
		if ev.Result == nil {
			t.Fatalf("expected the first tick past the limit to carry the result")
		}
		if ev.Result.TimeElapsed != 2000 || ev.Stats.TimeElapsed != 2000 {
			t.Fatalf("unexpected result: %+v", ev.Result)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected event after completion: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
	if tk.Running() {
		t.Fatalf("ticker should stop itself after completion")
	}
	tk.Stop()
}

func TestTickerStopHaltsTicks(t *testing.T) {
	s := newSession(t, "abc", timeSettings(model.ModeNormal, 60))
	s.HandleKey(RuneKey('a'), t0)

	events := make(chan TickEvent, 1024)
	tk := NewTicker(s, time.Millisecond, func(ev TickEvent) { events <- ev })
	tk.SetClock(func() time.Time { return t0.Add(time.Second) })
	tk.Start()
	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
	tk.Stop()
	tk.Stop()
	if tk.Running() {
		t.Fatalf("expected stopped ticker")
	}
	time.Sleep(20 * time.Millisecond)
	for len(events) > 0 {
		<-events
	}
	select {
	case ev := <-events:
		t.Fatalf("unexpected event after stop: %+v", ev)
	case <-time.After(30 * time.Millisecond):
	}
	if s.Phase() != PhaseActive {
		t.Fatalf("stopping the ticker must not change the session, got %s", s.Phase())
	}
}

func TestTickerStampsRunID(t *testing.T) {
	s := newSession(t, "abc", timeSettings(model.ModeNormal, 60))
	s.HandleKey(RuneKey('a'), t0)

	events := make(chan TickEvent, 1024)
	tk := NewTicker(s, time.Millisecond, func(ev TickEvent) { events <- ev })
	tk.SetClock(func() time.Time { return t0.Add(time.Second) })

	first := tk.Start()
	if first == 0 {
		t.Fatalf("run ids must start above zero")
	}
	if again := tk.Start(); again != first {
		t.Fatalf("starting a running ticker returned %d, want %d", again, first)
	}
	tk.Stop()

	second := tk.Start()
	if second <= first {
		t.Fatalf("expected a fresh run id, got %d after %d", second, first)
	}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Run != first && ev.Run != second {
				t.Fatalf("unknown run id %d", ev.Run)
			}
			if ev.Run == second {
				tk.Stop()
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for a tick from run %d", second)
		}
	}
}
