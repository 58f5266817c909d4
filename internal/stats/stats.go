// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

const charsPerWord = 5.0

// Compute derives a statistics snapshot from the character sequence.
// Only characters before currentIndex are considered typed.
func Compute(characters []model.CharacterState, currentIndex int, startTime time.Time, backspaces int, latencies []int64, now time.Time) model.TypingStats {
	if currentIndex > len(characters) {
		currentIndex = len(characters)
	}
	if currentIndex < 0 {
		currentIndex = 0
	}
	var elapsed int64
	if !startTime.IsZero() {
		elapsed = now.Sub(startTime).Milliseconds()
		if elapsed < 0 {
			elapsed = 0
		}
	}

	correct, incorrect, streak := 0, 0, 0
	for i := 0; i < currentIndex; i++ {
		switch characters[i].Status {
		case model.StatusCorrect:
			correct++
			streak++
		case model.StatusIncorrect:
			incorrect++
			streak = 0
		}
	}

	return model.TypingStats{
		WPM:             WPM(currentIndex, elapsed),
		NetWPM:          NetWPM(currentIndex, incorrect, elapsed),
		Accuracy:        Accuracy(correct, currentIndex),
		CharactersTyped: currentIndex,
		Backspaces:      backspaces,
		TimeElapsed:     elapsed,
		CurrentStreak:   streak,
		KeyLatencies:    append([]int64{}, latencies...),
		ErrorsCount:     incorrect,
	}
}

// WPM returns gross words per minute using five characters per word.
func WPM(typed int, elapsedMs int64) int {
	if elapsedMs <= 0 {
		return 0
	}
	return roundHalfUp((float64(typed) / charsPerWord) / minutes(elapsedMs))
}

// NetWPM returns words per minute after removing erroneous characters.
func NetWPM(typed, errors int, elapsedMs int64) int {
	if elapsedMs <= 0 {
		return 0
	}
	net := typed - errors
	if net < 0 {
		net = 0
	}
	return roundHalfUp((float64(net) / charsPerWord) / minutes(elapsedMs))
}

// Accuracy returns the percentage of correct characters, 100 when nothing was typed.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 100
	}
	return roundHalfUp(float64(correct) / float64(total) * 100)
}

func minutes(ms int64) float64 {
	return float64(ms) / 60000.0
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
