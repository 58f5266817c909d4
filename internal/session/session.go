// Package session implements the typing test input state machine.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/stats"
)

// Phase is the lifecycle position of a session.
type Phase int

// Session phases.
const (
	PhaseNotStarted Phase = iota
	PhaseActive
	PhasePaused
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseComplete:
		return "complete"
	default:
		return "not started"
	}
}

// TextGenerator produces the target text for a test configuration.
type TextGenerator interface {
	ForSettings(model.Settings) string
}

// Session owns the typing state of one test. All methods are safe for
// concurrent use; keystrokes and ticks are serialized by the session lock.
type Session struct {
	mu         sync.Mutex
	gen        TextGenerator
	settings   model.Settings
	state      model.TypingState
	paused     bool
	pausedAt   time.Time
	backspaces int
	latencies  []int64
	lastKeyAt  time.Time
	result     *model.TestResult
}

// New validates settings and builds a session with freshly generated text.
// Every character starts untyped.
func New(settings model.Settings, gen TextGenerator) (*Session, error) {
	if gen == nil {
		return nil, errors.New("text generator is required")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Session{gen: gen, settings: settings}
	s.reset(false)
	return s, nil
}

// Restart discards all progress and starts over with newly generated text.
// Unlike New, the first character is marked current.
func (s *Session) Restart(settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.reset(true)
	return nil
}

func (s *Session) reset(markFirst bool) {
	text := []rune(s.gen.ForSettings(s.settings))
	chars := make([]model.CharacterState, len(text))
	for i, r := range text {
		chars[i] = model.CharacterState{Char: r, Status: model.StatusUntyped}
	}
	if markFirst && len(chars) > 0 {
		chars[0].Status = model.StatusCurrent
	}
	s.state = model.TypingState{
		Text:       text,
		Characters: chars,
		Stats:      model.TypingStats{Accuracy: 100, KeyLatencies: []int64{}},
	}
	s.paused = false
	s.pausedAt = time.Time{}
	s.backspaces = 0
	s.latencies = nil
	s.lastKeyAt = time.Time{}
	s.result = nil
}

// HandleKey applies one keystroke. It returns the final result when this
// keystroke completes a word-bounded test.
func (s *Session) HandleKey(key Key, now time.Time) (model.TestResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsComplete || s.paused || key.HasModifier() {
		return model.TestResult{}, false
	}
	switch {
	case key.Kind == KeyBackspace:
		s.backspace(now)
	case key.Printable():
		return s.typeRune(key.Rune, now)
	}
	return model.TestResult{}, false
}

func (s *Session) backspace(now time.Time) {
	if s.settings.Mode == model.ModeHard || s.state.CurrentIndex == 0 {
		return
	}
	s.sampleLatency(now)
	if old := s.state.CurrentIndex; old < len(s.state.Characters) {
		s.state.Characters[old].Status = model.StatusUntyped
	}
	s.state.CurrentIndex--
	idx := s.state.CurrentIndex
	s.state.Characters[idx] = model.CharacterState{Char: s.state.Text[idx], Status: model.StatusUntyped}
	s.backspaces++
	s.refresh(now)
}

func (s *Session) typeRune(r rune, now time.Time) (model.TestResult, bool) {
	idx := s.state.CurrentIndex
	if idx >= len(s.state.Text) {
		return model.TestResult{}, false
	}
	s.sampleLatency(now)
	if s.state.StartTime.IsZero() {
		s.state.StartTime = now
		s.state.IsActive = true
	}
	status := model.StatusIncorrect
	if r == s.state.Text[idx] {
		status = model.StatusCorrect
	}
	s.state.Characters[idx] = model.CharacterState{Char: s.state.Text[idx], Status: status, Timestamp: now}
	idx++
	s.state.CurrentIndex = idx
	if idx < len(s.state.Characters) {
		s.state.Characters[idx].Status = model.StatusCurrent
	}
	s.refresh(now)
	if s.settings.TestType == model.TestTypeWords && s.settings.Mode != model.ModeZen && idx >= len(s.state.Text) {
		return s.complete(now), true
	}
	return model.TestResult{}, false
}

func (s *Session) sampleLatency(now time.Time) {
	if !s.lastKeyAt.IsZero() {
		s.latencies = append(s.latencies, now.Sub(s.lastKeyAt).Milliseconds())
	}
	s.lastKeyAt = now
}

// Tick recomputes live stats. It returns the final result when the time
// limit of a time-bounded test is reached.
func (s *Session) Tick(now time.Time) (model.TestResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsActive || s.paused || s.state.IsComplete {
		return model.TestResult{}, false
	}
	s.refresh(now)
	if s.settings.TestType == model.TestTypeTime && s.settings.Mode != model.ModeZen &&
		s.state.Stats.TimeElapsed >= int64(s.settings.TimeLimit)*1000 {
		return s.complete(now), true
	}
	return model.TestResult{}, false
}

// Finish ends an active test on external request, as zen tests require.
func (s *Session) Finish(now time.Time) (model.TestResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsActive || s.state.IsComplete {
		return model.TestResult{}, false
	}
	if s.paused {
		s.resume(now)
	}
	s.refresh(now)
	return s.complete(now), true
}

// Pause suspends the test. Keystrokes and ticks are ignored until Resume.
func (s *Session) Pause(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused || s.state.IsComplete {
		return
	}
	s.paused = true
	s.pausedAt = now
}

// Resume continues a paused test. Time spent paused does not count as elapsed.
func (s *Session) Resume(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.resume(now)
}

func (s *Session) resume(now time.Time) {
	if gap := now.Sub(s.pausedAt); gap > 0 {
		if !s.state.StartTime.IsZero() {
			s.state.StartTime = s.state.StartTime.Add(gap)
		}
		if !s.lastKeyAt.IsZero() {
			s.lastKeyAt = s.lastKeyAt.Add(gap)
		}
	}
	s.paused = false
	s.pausedAt = time.Time{}
}

func (s *Session) refresh(now time.Time) {
	s.state.Stats = stats.Compute(s.state.Characters, s.state.CurrentIndex, s.state.StartTime, s.backspaces, s.latencies, now)
}

func (s *Session) complete(now time.Time) model.TestResult {
	s.state.IsComplete = true
	result := model.TestResult{
		TypingStats: s.state.Stats,
		Mode:        s.settings.Mode,
		Difficulty:  s.settings.Difficulty,
		TextLength:  len(s.state.Text),
		CompletedAt: now,
	}
	result.KeyLatencies = append([]int64{}, s.state.Stats.KeyLatencies...)
	s.result = &result
	return cloneResult(result)
}

// Phase reports where the session is in its lifecycle.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.state.IsComplete:
		return PhaseComplete
	case s.paused:
		return PhasePaused
	case s.state.IsActive:
		return PhaseActive
	default:
		return PhaseNotStarted
	}
}

// Snapshot returns a deep copy of the current typing state.
func (s *Session) Snapshot() model.TypingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Stats returns a copy of the latest statistics.
func (s *Session) Stats() model.TypingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state.Stats
	st.KeyLatencies = append([]int64{}, st.KeyLatencies...)
	return st
}

// Settings returns the configuration of the current run.
func (s *Session) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Result returns the final result once the session is complete.
func (s *Session) Result() (model.TestResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return model.TestResult{}, false
	}
	return cloneResult(*s.result), true
}

func cloneResult(r model.TestResult) model.TestResult {
	r.KeyLatencies = append([]int64{}, r.KeyLatencies...)
	return r
}
