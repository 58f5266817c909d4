package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/typemaster/internal/model"
)

func charStates(text string, statuses ...model.CharStatus) []model.CharacterState {
	runes := []rune(text)
	out := make([]model.CharacterState, len(runes))
	for i, r := range runes {
		out[i] = model.CharacterState{Char: r}
		if i < len(statuses) {
			out[i].Status = statuses[i]
		}
	}
	return out
}

func TestBuildStyledRunesCursor(t *testing.T) {
	chars := charStates("ab", model.StatusCorrect, model.StatusCurrent)
	runes := buildStyledRunes(chars, 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	chars := charStates("a", model.StatusCorrect)
	runes := buildStyledRunes(chars, -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	chars := charStates("ab", model.StatusCorrect, model.StatusIncorrect)
	runes := buildStyledRunes(chars, -1)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style showing the target rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	chars := charStates("one two", model.StatusCorrect, model.StatusCurrent)
	runes := buildStyledRunes(chars, 1)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if runes[6].s != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	chars := charStates("a b", model.StatusCorrect, model.StatusIncorrect, model.StatusCurrent)
	runes := buildStyledRunes(chars, 2)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
	if !runes[1].isSpace {
		t.Fatalf("wrong space should still wrap as a space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := []styledRune{}
	for _, r := range "aa bb cc" {
		runes = append(runes, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	got := wrapStyledRunes(runes, 6)
	if got != "aa bb\ncc" {
		t.Fatalf("unexpected wrap %q", got)
	}
	if wrapStyledRunes(runes, 0) != "aa bb cc" {
		t.Fatalf("expected no wrapping for width 0")
	}
	long := []styledRune{}
	for range strings.Repeat("x", 7) {
		long = append(long, styledRune{s: "x", width: 1})
	}
	if got := wrapStyledRunes(long, 3); got != "xxx\nxxx\nx" {
		t.Fatalf("expected hard break for long word, got %q", got)
	}
}
