package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

func chars(statuses ...model.CharStatus) []model.CharacterState {
	out := make([]model.CharacterState, len(statuses))
	for i, s := range statuses {
		out[i] = model.CharacterState{Char: 'x', Status: s}
	}
	return out
}

func repeat(s model.CharStatus, n int) []model.CharStatus {
	out := make([]model.CharStatus, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestComputeTenCharsOneMinute(t *testing.T) {
	statuses := append(repeat(model.StatusCorrect, 8), model.StatusIncorrect, model.StatusIncorrect)
	start := time.Unix(1000, 0)
	got := Compute(chars(statuses...), 10, start, 0, nil, start.Add(time.Minute))
	if got.TimeElapsed != 60000 {
		t.Fatalf("expected 60000ms elapsed, got %d", got.TimeElapsed)
	}
	if got.WPM != 2 || got.NetWPM != 2 {
		t.Fatalf("expected wpm 2 / net 2, got %d / %d", got.WPM, got.NetWPM)
	}
	if got.Accuracy != 80 {
		t.Fatalf("expected accuracy 80, got %d", got.Accuracy)
	}
	if got.ErrorsCount != 2 || got.CharactersTyped != 10 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.CurrentStreak != 0 {
		t.Fatalf("expected streak reset by trailing error, got %d", got.CurrentStreak)
	}
}

func TestComputeStreakCountsTrailingCorrect(t *testing.T) {
	c := chars(model.StatusCorrect, model.StatusIncorrect, model.StatusCorrect, model.StatusCorrect, model.StatusCorrect, model.StatusUntyped)
	got := Compute(c, 5, time.Time{}, 0, nil, time.Now())
	if got.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", got.CurrentStreak)
	}
}

func TestComputeIgnoresCharactersPastIndex(t *testing.T) {
	c := chars(model.StatusCorrect, model.StatusIncorrect, model.StatusIncorrect)
	got := Compute(c, 1, time.Time{}, 0, nil, time.Now())
	if got.ErrorsCount != 0 || got.Accuracy != 100 || got.CurrentStreak != 1 {
		t.Fatalf("expected only first char counted, got %+v", got)
	}
}

func TestAccuracyAtIndexZero(t *testing.T) {
	for _, c := range [][]model.CharacterState{nil, chars(model.StatusIncorrect), chars(model.StatusCorrect, model.StatusIncorrect)} {
		if got := Compute(c, 0, time.Time{}, 0, nil, time.Now()); got.Accuracy != 100 {
			t.Fatalf("expected accuracy 100 at index 0, got %d", got.Accuracy)
		}
	}
}

func TestZeroElapsedYieldsZeroWPM(t *testing.T) {
	start := time.Unix(50, 0)
	c := chars(repeat(model.StatusCorrect, 40)...)
	for _, idx := range []int{0, 1, 20, 40} {
		got := Compute(c, idx, start, 0, nil, start)
		if got.WPM != 0 || got.NetWPM != 0 {
			t.Fatalf("expected zero wpm at zero elapsed for index %d, got %+v", idx, got)
		}
		unset := Compute(c, idx, time.Time{}, 0, nil, start.Add(time.Hour))
		if unset.TimeElapsed != 0 || unset.WPM != 0 {
			t.Fatalf("expected zero elapsed without a start time, got %+v", unset)
		}
	}
}

func TestNetWPMNeverExceedsWPM(t *testing.T) {
	for _, typed := range []int{0, 1, 7, 33, 250} {
		for _, elapsed := range []int64{1, 999, 12000, 60000, 3600000} {
			for errors := 0; errors <= typed+3; errors++ {
				if NetWPM(typed, errors, elapsed) > WPM(typed, elapsed) {
					t.Fatalf("net wpm exceeded wpm for typed=%d errors=%d elapsed=%d", typed, errors, elapsed)
				}
			}
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	// 25 chars in 2 minutes: (25/5)/2 = 2.5
	if got := WPM(25, 120000); got != 3 {
		t.Fatalf("expected 2.5 to round up to 3, got %d", got)
	}
	// 1 of 8 correct: 12.5%
	if got := Accuracy(1, 8); got != 13 {
		t.Fatalf("expected 12.5 to round up to 13, got %d", got)
	}
}

func TestComputeCopiesLatencies(t *testing.T) {
	lat := []int64{10, 20}
	got := Compute(nil, 0, time.Time{}, 4, lat, time.Now())
	lat[0] = 999
	if got.KeyLatencies[0] != 10 {
		t.Fatalf("expected latencies to be copied")
	}
	if got.Backspaces != 4 {
		t.Fatalf("expected backspaces passed through, got %d", got.Backspaces)
	}
}
