package session

import (
	"sync"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

// DefaultTickInterval is the live-stats refresh cadence.
const DefaultTickInterval = 100 * time.Millisecond

// TickEvent reports one tick to the observer. Result is set on the tick
// that completed the session; it is the last event the ticker delivers.
// Run is the id Start returned for the loop that produced the event.
type TickEvent struct {
	Run    uint64
	At     time.Time
	Stats  model.TypingStats
	Result *model.TestResult
}

// Ticker calls Session.Tick on a fixed cadence between Start and Stop.
type Ticker struct {
	mu       sync.Mutex
	session  *Session
	interval time.Duration
	notify   func(TickEvent)
	clock    func() time.Time
	stopCh   chan struct{}
	running  bool
	runs     uint64
}

// NewTicker creates a stopped ticker for the session.
// notify runs on the ticker goroutine and must not call Stop synchronously.
func NewTicker(s *Session, interval time.Duration, notify func(TickEvent)) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if notify == nil {
		notify = func(TickEvent) {}
	}
	return &Ticker{
		session:  s,
		interval: interval,
		notify:   notify,
		clock:    time.Now,
	}
}

// SetClock replaces the time source passed to Session.Tick.
func (t *Ticker) SetClock(clock func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if clock != nil {
		t.clock = clock
	}
}

// Start launches the ticking loop and returns its run id. Ids start at 1
// and grow with every loop. Starting a running ticker returns the id of
// the loop already running.
func (t *Ticker) Start() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return t.runs
	}
	t.running = true
	t.runs++
	t.stopCh = make(chan struct{})
	go t.run(t.stopCh, t.runs, t.clock)
	return t.runs
}

// Stop terminates the ticking loop without waiting for it. Stopping a
// stopped ticker is a no-op. An event that passed its final check before
// Stop may still reach notify after Stop returns; it carries the stopped
// loop's run id, so observers drop it by comparing ids.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	close(t.stopCh)
	t.running = false
}

// Running reports whether the loop is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Ticker) run(stop chan struct{}, id uint64, clock func() time.Time) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !t.current(stop) {
				return
			}
			now := clock()
			result, done := t.session.Tick(now)
			ev := TickEvent{Run: id, At: now, Stats: t.session.Stats()}
			if done {
				ev.Result = &result
				t.release(stop)
			} else if !t.current(stop) {
				return
			}
			t.notify(ev)
			if done {
				return
			}
		}
	}
}

func (t *Ticker) current(stop chan struct{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running && t.stopCh == stop
}

func (t *Ticker) release(stop chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running && t.stopCh == stop {
		close(t.stopCh)
		t.running = false
	}
}
