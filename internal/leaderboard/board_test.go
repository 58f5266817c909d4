package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/model"
)

type memStore struct {
	entries []model.LeaderboardEntry
	readErr error
	cleared bool
}

func (m *memStore) ReadAll(context.Context) ([]model.LeaderboardEntry, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]model.LeaderboardEntry(nil), m.entries...), nil
}

func (m *memStore) Append(_ context.Context, e model.LeaderboardEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.entries = nil
	m.cleared = true
	return nil
}

func newTestBoard(store Store) *Board {
	b := NewBoard(store, zerolog.Nop())
	n := 0
	b.newID = func() string {
		n++
		return string(rune('0' + n))
	}
	return b
}

func TestSubmitCreatesEntry(t *testing.T) {
	store := &memStore{}
	b := newTestBoard(store)
	completed := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	result := model.TestResult{
		TypingStats: model.TypingStats{WPM: 72, NetWPM: 68, Accuracy: 96},
		Mode:        model.ModePunctuation,
		Difficulty:  model.DifficultyMedium,
		CompletedAt: completed,
	}
	entry, err := b.Submit(context.Background(), "  ada  ", result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Username != "ada" || entry.ID != "1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.WPM != 72 || entry.NetWPM != 68 || entry.Accuracy != 96 {
		t.Fatalf("metrics not copied: %+v", entry)
	}
	if entry.Mode != model.ModePunctuation || entry.Difficulty != model.DifficultyMedium {
		t.Fatalf("settings not copied: %+v", entry)
	}
	if !entry.CreatedAt.Equal(completed.Truncate(time.Millisecond)) {
		t.Fatalf("expected createdAt truncated to ms, got %v", entry.CreatedAt)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(store.entries))
	}
}

func TestSubmitRequiresUsername(t *testing.T) {
	store := &memStore{}
	b := newTestBoard(store)
	result := model.TestResult{Mode: model.ModeNormal, Difficulty: model.DifficultyEasy, CompletedAt: time.Now()}
	if _, err := b.Submit(context.Background(), "   ", result); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestEntriesDropsMalformed(t *testing.T) {
	good := entry("a", 50, 45, 90, model.ModeNormal, model.DifficultyEasy)
	noName := entry("b", 50, 45, 90, model.ModeNormal, model.DifficultyEasy)
	noName.Username = " "
	badAcc := entry("c", 50, 45, 140, model.ModeNormal, model.DifficultyEasy)
	badMode := entry("d", 50, 45, 90, "turbo", model.DifficultyEasy)
	noTime := entry("e", 50, 45, 90, model.ModeNormal, model.DifficultyEasy)
	noTime.CreatedAt = time.Time{}

	b := newTestBoard(&memStore{entries: []model.LeaderboardEntry{good, noName, badAcc, badMode, noTime}})
	got := b.Entries(context.Background())
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only the valid entry, got %v", ids(got))
	}
}

func TestEntriesReadFailureIsEmpty(t *testing.T) {
	b := newTestBoard(&memStore{readErr: errors.New("corrupt")})
	got := b.Entries(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty collection, got %#v", got)
	}
	if ranked := b.Ranked(context.Background(), All, All, SortWPM); len(ranked) != 0 {
		t.Fatalf("expected empty ranking")
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	store := &memStore{entries: []model.LeaderboardEntry{entry("a", 1, 1, 1, model.ModeNormal, model.DifficultyEasy)}}
	b := newTestBoard(store)

	if err := b.Clear(context.Background(), nil); !errors.Is(err, ErrClearNotConfirmed) {
		t.Fatalf("expected ErrClearNotConfirmed for nil confirm, got %v", err)
	}
	var asked string
	decline := func(prompt string) bool {
		asked = prompt
		return false
	}
	if err := b.Clear(context.Background(), decline); !errors.Is(err, ErrClearNotConfirmed) {
		t.Fatalf("expected ErrClearNotConfirmed, got %v", err)
	}
	if asked != ClearPrompt {
		t.Fatalf("unexpected prompt %q", asked)
	}
	if store.cleared || len(store.entries) != 1 {
		t.Fatalf("store should be untouched")
	}
	if err := b.Clear(context.Background(), func(string) bool { return true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.cleared || len(store.entries) != 0 {
		t.Fatalf("expected store cleared")
	}
}
