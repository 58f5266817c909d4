// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

const histogramBarWidth = 30

// RenderResult prints the final metrics and latency histogram for a test.
func RenderResult(w io.Writer, result model.TestResult) error {
	avg := AverageLatency(result.KeyLatencies)
	t := NewTable(Column{Header: "Metric"}, Column{Header: "Value", Right: true})
	t.Row("WPM", fmt.Sprintf("%d", result.WPM))
	t.Row("Net WPM", fmt.Sprintf("%d", result.NetWPM))
	t.Row("Accuracy", fmt.Sprintf("%d%%", result.Accuracy))
	t.Row("Characters", fmt.Sprintf("%d/%d", result.CharactersTyped, result.TextLength))
	t.Row("Errors", fmt.Sprintf("%d", result.ErrorsCount))
	t.Row("Backspaces", fmt.Sprintf("%d", result.Backspaces))
	t.Row("Streak", fmt.Sprintf("%d", result.CurrentStreak))
	t.Row("Time", fmt.Sprintf("%ds", (result.TimeElapsed+500)/1000))
	t.Row("Avg Latency", fmt.Sprintf("%dms", avg))
	t.Row("Mode", fmt.Sprintf("%s/%s", result.Mode, result.Difficulty))
	if err := t.Render(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderHistogram(w, LatencyHistogram(result.KeyLatencies))
}

// RenderHistogram prints one bar per latency bucket scaled to the largest bucket.
func RenderHistogram(w io.Writer, h Histogram) error {
	if _, err := fmt.Fprintln(w, "Key Latency"); err != nil {
		return err
	}
	peak := 0
	for _, b := range h {
		if b.Count > peak {
			peak = b.Count
		}
	}
	t := NewTable(Column{}, Column{Right: true}, Column{})
	for _, b := range h {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("#", b.Count*histogramBarWidth/peak)
		}
		t.Row(b.Label, fmt.Sprintf("%d", b.Count), bar)
	}
	return t.Render(w)
}

// RenderLeaderboard prints ranked entries, best first, numbered from 1.
func RenderLeaderboard(w io.Writer, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet.")
		return err
	}
	t := NewTable(
		Column{Header: "#", Right: true},
		Column{Header: "Name"},
		Column{Header: "WPM", Right: true},
		Column{Header: "Net", Right: true},
		Column{Header: "Acc", Right: true},
		Column{Header: "Mode"},
		Column{Header: "Date"},
	)
	for i, e := range entries {
		t.Row(
			fmt.Sprintf("%d", i+1),
			e.Username,
			fmt.Sprintf("%d", e.WPM),
			fmt.Sprintf("%d", e.NetWPM),
			fmt.Sprintf("%d%%", e.Accuracy),
			fmt.Sprintf("%s/%s", e.Mode, e.Difficulty),
			e.CreatedAt.Local().Format(time.DateOnly),
		)
	}
	return t.Render(w)
}

// RenderHistory prints recent results oldest first, followed by a net WPM trend.
func RenderHistory(w io.Writer, records []model.ResultRecord, window int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	t := NewTable(
		Column{Header: "Completed"},
		Column{Header: "Mode"},
		Column{Header: "WPM", Right: true},
		Column{Header: "Net", Right: true},
		Column{Header: "Acc", Right: true},
		Column{Header: "Errors", Right: true},
		Column{Header: "Latency", Right: true},
	)
	nets := make([]float64, 0, len(records))
	for _, rec := range records {
		r := rec.Result
		t.Row(
			r.CompletedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%s/%s", r.Mode, r.Difficulty),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d", r.NetWPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.ErrorsCount),
			fmt.Sprintf("%dms", rec.AverageLatency),
		)
		nets = append(nets, float64(r.NetWPM))
	}
	if err := t.Render(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Net WPM trend: %s\n", Sparkline(MovingAverage(nets, window)))
	return err
}
