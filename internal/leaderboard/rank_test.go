package leaderboard

import (
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

func entry(id string, wpm, net, acc int, mode model.Mode, diff model.Difficulty) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		ID:         id,
		Username:   "user-" + id,
		WPM:        wpm,
		NetWPM:     net,
		Accuracy:   acc,
		Mode:       mode,
		Difficulty: diff,
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ids(entries []model.LeaderboardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankSortKeys(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry("a", 80, 70, 90, model.ModeNormal, model.DifficultyEasy),
		entry("b", 90, 60, 95, model.ModeNormal, model.DifficultyEasy),
		entry("c", 70, 75, 95, model.ModeNormal, model.DifficultyEasy),
		entry("d", 60, 50, 99, model.ModeNormal, model.DifficultyEasy),
	}
	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortWPM, []string{"b", "a", "c", "d"}},
		{SortNetWPM, []string{"c", "a", "b", "d"}},
		{"", []string{"c", "a", "b", "d"}},
		{SortAccuracy, []string{"d", "c", "b", "a"}},
	}
	for _, tc := range cases {
		got := ids(Rank(entries, All, All, tc.key))
		if !equalIDs(got, tc.want) {
			t.Fatalf("key %q: expected %v, got %v", tc.key, tc.want, got)
		}
	}
}

func TestRankFilters(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry("a", 80, 70, 90, model.ModeNormal, model.DifficultyEasy),
		entry("b", 90, 60, 95, model.ModeQuotes, model.DifficultyEasy),
		entry("c", 70, 75, 95, model.ModeNormal, model.DifficultyHard),
	}
	if got := ids(Rank(entries, "normal", All, SortWPM)); !equalIDs(got, []string{"a", "c"}) {
		t.Fatalf("mode filter: got %v", got)
	}
	if got := ids(Rank(entries, All, "easy", SortWPM)); !equalIDs(got, []string{"b", "a"}) {
		t.Fatalf("difficulty filter: got %v", got)
	}
	if got := ids(Rank(entries, "normal", "hard", SortWPM)); !equalIDs(got, []string{"c"}) {
		t.Fatalf("combined filter: got %v", got)
	}
	got := Rank(entries, "zen", All, SortWPM)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRankStableAndPure(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry("a", 50, 40, 90, model.ModeNormal, model.DifficultyEasy),
		entry("b", 50, 40, 90, model.ModeNormal, model.DifficultyEasy),
		entry("c", 60, 40, 90, model.ModeNormal, model.DifficultyEasy),
	}
	before := ids(entries)
	got := ids(Rank(entries, All, All, SortNetWPM))
	if !equalIDs(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected input order on ties, got %v", got)
	}
	if !equalIDs(ids(entries), before) {
		t.Fatalf("input was mutated: %v", ids(entries))
	}
	if out := Rank(nil, All, All, SortWPM); out == nil || len(out) != 0 {
		t.Fatalf("expected empty slice for nil input")
	}
}

func TestRankOrderedByKey(t *testing.T) {
	var entries []model.LeaderboardEntry
	for i := 0; i < 30; i++ {
		id := string(rune('a' + i%26))
		entries = append(entries, entry(id, (i*37)%101, (i*53)%89, (i*17)%101, model.ModeNormal, model.DifficultyEasy))
	}
	out := Rank(entries, All, All, SortAccuracy)
	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		if prev.Accuracy < cur.Accuracy {
			t.Fatalf("accuracy out of order at %d", i)
		}
		if prev.Accuracy == cur.Accuracy && prev.NetWPM < cur.NetWPM {
			t.Fatalf("tie not broken by net wpm at %d", i)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":         SortNetWPM,
		"netWpm":   SortNetWPM,
		"wpm":      SortWPM,
		"Accuracy": SortAccuracy,
	}
	for in, want := range cases {
		got, err := ParseSortKey(in)
		if err != nil || got != want {
			t.Fatalf("ParseSortKey(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseSortKey("speed"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestValidateFilter(t *testing.T) {
	if err := ValidateFilter(All, All); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateFilter("zen", "hard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateFilter("slow", All); err == nil {
		t.Fatalf("expected mode error")
	}
	if err := ValidateFilter(All, "extreme"); err == nil {
		t.Fatalf("expected difficulty error")
	}
}
