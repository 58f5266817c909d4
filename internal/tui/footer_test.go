package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typemaster/internal/model"
)

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel(t, wordsSettings("abcd"), nil, nil)
	typeText(m, "ab")
	m.hasLast = true
	m.lastNet = 72
	m.bestNet = 90

	out := m.renderFooter()
	if !containsAll(out, []string{"Progress 50%", "Last 72 WPM", "Best 90 WPM"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRemaining(t *testing.T) {
	timed := model.Settings{Mode: model.ModeNormal, TestType: model.TestTypeTime, TimeLimit: 30, WordLimit: 25}
	state := model.TypingState{Stats: model.TypingStats{TimeElapsed: 12_100}}
	if got := remaining(timed, state); got != "18s left" {
		t.Fatalf("unexpected time remaining %q", got)
	}
	state.Stats.TimeElapsed = 31_000
	if got := remaining(timed, state); got != "0s left" {
		t.Fatalf("expected clamp at zero, got %q", got)
	}

	words := model.Settings{Mode: model.ModeNormal, TestType: model.TestTypeWords, WordLimit: 25}
	if got := remaining(words, model.TypingState{CurrentIndex: 14}); got != "23 words left" {
		t.Fatalf("unexpected words remaining %q", got)
	}
	if got := remaining(words, model.TypingState{CurrentIndex: 500}); got != "0 words left" {
		t.Fatalf("expected clamp at zero, got %q", got)
	}

	zen := model.Settings{Mode: model.ModeZen, TestType: model.TestTypeTime, TimeLimit: 30}
	if got := remaining(zen, state); got != "zen" {
		t.Fatalf("unexpected zen label %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
