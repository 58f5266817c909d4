package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typemaster/internal/config"
	"github.com/verte-zerg/typemaster/internal/leaderboard"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/store"
)

const (
	defaultHistoryLast   = 20
	defaultHistoryWindow = 5
	defaultBoardLimit    = 10
)

var (
	boardMode       string
	boardDifficulty string
	boardSort       string
	boardLimit      int
	clearYes        bool
	historyLast     int
	historyWindow   int
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&boardMode, "mode", leaderboard.All, "mode filter or 'all'")
	cmd.Flags().StringVar(&boardDifficulty, "difficulty", leaderboard.All, "difficulty filter or 'all'")
	cmd.Flags().StringVar(&boardSort, "sort", string(leaderboard.SortNetWPM), "sort by wpm, netWpm or accuracy")
	cmd.Flags().IntVar(&boardLimit, "limit", defaultBoardLimit, "number of entries to show (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all leaderboard entries",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardClearCmd,
	}
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "skip the confirmation prompt")
	cmd.AddCommand(clearCmd)
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N results (0 for all)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	_, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode := strings.ToLower(strings.TrimSpace(boardMode))
	difficulty := strings.ToLower(strings.TrimSpace(boardDifficulty))
	if err := leaderboard.ValidateFilter(mode, difficulty); err != nil {
		return err
	}
	key, err := leaderboard.ParseSortKey(boardSort)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	board := leaderboard.NewBoard(leaderboardStore(st, log), log)
	entries := board.Ranked(withContext(cmd), mode, difficulty, key)
	if boardLimit > 0 && len(entries) > boardLimit {
		entries = entries[:boardLimit]
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), entries)
}

func runLeaderboardClearCmd(cmd *cobra.Command, _ []string) error {
	_, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	confirm := func(prompt string) bool {
		if clearYes {
			return true
		}
		return promptYesNo(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
	}
	board := leaderboard.NewBoard(leaderboardStore(st, log), log)
	if err := board.Clear(withContext(cmd), confirm); err != nil {
		if errors.Is(err, leaderboard.ErrClearNotConfirmed) {
			_, werr := fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
			return werr
		}
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard cleared.")
	return err
}

// promptYesNo asks a y/N question. Without an interactive stdin the answer is no.
func promptYesNo(in io.Reader, out io.Writer, prompt string) bool {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if _, err := fmt.Fprintf(out, "%s [y/N] ", prompt); err != nil {
		return false
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	_, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if historyWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	ctx := withContext(cmd)
	records, err := st.ListResults(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderHistory(out, records, historyWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	h, err := st.LatencyHistogram(ctx, historyLast)
	if err != nil {
		return fmt.Errorf("failed to load latency histogram: %w", err)
	}
	if _, err := fmt.Fprintln(out, ""); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistogram(out, h); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
