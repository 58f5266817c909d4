package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/model"
)

// ErrUsernameRequired is returned when a result is submitted without a name.
var ErrUsernameRequired = errors.New("username is required")

// ErrClearNotConfirmed is returned when a clear request was not confirmed.
var ErrClearNotConfirmed = errors.New("clear not confirmed")

// Store is the persisted leaderboard collection.
type Store interface {
	ReadAll(ctx context.Context) ([]model.LeaderboardEntry, error)
	Append(ctx context.Context, entry model.LeaderboardEntry) error
	Clear(ctx context.Context) error
}

// ConfirmFunc asks the user to approve an irreversible action.
type ConfirmFunc func(prompt string) bool

// ClearPrompt is the question asked before clearing the leaderboard.
const ClearPrompt = "Are you sure you want to clear all leaderboard data?"

// Board reads, ranks and appends leaderboard entries through a Store.
type Board struct {
	store Store
	log   zerolog.Logger
	newID func() string
}

// NewBoard wraps store.
func NewBoard(store Store, log zerolog.Logger) *Board {
	return &Board{
		store: store,
		log:   log,
		newID: func() string { return uuid.New().String() },
	}
}

// Entries returns every valid stored entry. Read failures are logged and
// yield an empty collection; malformed records are dropped.
func (b *Board) Entries(ctx context.Context) []model.LeaderboardEntry {
	raw, err := b.store.ReadAll(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("failed to read leaderboard; treating as empty")
		return []model.LeaderboardEntry{}
	}
	entries := make([]model.LeaderboardEntry, 0, len(raw))
	for _, e := range raw {
		if err := model.ValidateEntry(e); err != nil {
			b.log.Warn().Err(err).Str("id", e.ID).Msg("dropping malformed leaderboard entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// Ranked returns the filtered and sorted entries for display.
func (b *Board) Ranked(ctx context.Context, modeFilter, difficultyFilter string, key SortKey) []model.LeaderboardEntry {
	return Rank(b.Entries(ctx), modeFilter, difficultyFilter, key)
}

// Submit records a finished result under username.
func (b *Board) Submit(ctx context.Context, username string, result model.TestResult) (model.LeaderboardEntry, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.LeaderboardEntry{}, ErrUsernameRequired
	}
	entry := model.LeaderboardEntry{
		ID:         b.newID(),
		Username:   username,
		WPM:        result.WPM,
		NetWPM:     result.NetWPM,
		Accuracy:   result.Accuracy,
		Mode:       result.Mode,
		Difficulty: result.Difficulty,
		CreatedAt:  result.CompletedAt.Truncate(time.Millisecond),
	}
	if err := model.ValidateEntry(entry); err != nil {
		return model.LeaderboardEntry{}, err
	}
	if err := b.store.Append(ctx, entry); err != nil {
		return model.LeaderboardEntry{}, fmt.Errorf("failed to save score: %w", err)
	}
	b.log.Debug().Str("id", entry.ID).Str("username", entry.Username).Int("net_wpm", entry.NetWPM).Msg("score submitted")
	return entry, nil
}

// Clear empties the leaderboard after confirm approves it.
func (b *Board) Clear(ctx context.Context, confirm ConfirmFunc) error {
	if confirm == nil || !confirm(ClearPrompt) {
		return ErrClearNotConfirmed
	}
	if err := b.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	b.log.Info().Msg("leaderboard cleared")
	return nil
}
