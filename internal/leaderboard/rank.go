// Package leaderboard filters, ranks and records submitted results.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/typemaster/internal/model"
)

// All is the wildcard filter value.
const All = "all"

// SortKey selects the ranking metric.
type SortKey string

// Ranking metrics.
const (
	SortWPM      SortKey = "wpm"
	SortNetWPM   SortKey = "netWpm"
	SortAccuracy SortKey = "accuracy"
)

// ParseSortKey converts a user-supplied sort key. Empty means net WPM.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "netwpm", "net-wpm", "net":
		return SortNetWPM, nil
	case "wpm":
		return SortWPM, nil
	case "accuracy", "acc":
		return SortAccuracy, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want wpm, netWpm or accuracy)", s)
}

// ValidateFilter checks a mode and difficulty filter pair.
func ValidateFilter(mode, difficulty string) error {
	if mode != All {
		if _, err := model.ParseMode(mode); err != nil {
			return err
		}
	}
	if difficulty != All {
		if _, err := model.ParseDifficulty(difficulty); err != nil {
			return err
		}
	}
	return nil
}

// Rank returns the entries matching both filters, best first. The input
// slice is left untouched.
func Rank(entries []model.LeaderboardEntry, modeFilter, difficultyFilter string, key SortKey) []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if modeFilter != All && string(e.Mode) != modeFilter {
			continue
		}
		if difficultyFilter != All && string(e.Difficulty) != difficultyFilter {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortWPM:
			return a.WPM > b.WPM
		case SortAccuracy:
			if a.Accuracy == b.Accuracy {
				return a.NetWPM > b.NetWPM
			}
			return a.Accuracy > b.Accuracy
		default:
			return a.NetWPM > b.NetWPM
		}
	})
	return out
}
