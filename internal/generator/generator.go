// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

const (
	punctPct  = 0.3
	numberPct = 0.7
	numberMax = 1000
)

// Generator produces randomized typing text.
type Generator struct {
	rnd   *rand.Rand
	vocab map[model.Difficulty][]string
}

// New returns a Generator drawing from rnd. A nil rnd is seeded with the current time.
func New(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	vocab := make(map[model.Difficulty][]string, len(commonWords))
	for d, words := range commonWords {
		vocab[d] = words
	}
	return &Generator{rnd: rnd, vocab: vocab}
}

// WithVocabulary replaces the word tier for a difficulty. Empty lists are ignored.
func (g *Generator) WithVocabulary(d model.Difficulty, words []string) *Generator {
	if len(words) > 0 {
		g.vocab[d] = append([]string(nil), words...)
	}
	return g
}

// ForSettings generates the target text for a test configuration.
func (g *Generator) ForSettings(s model.Settings) string {
	return g.Generate(s.Mode, s.Difficulty, s.WordLimit, s.CustomText)
}

// Generate returns the target text for a mode.
func (g *Generator) Generate(mode model.Mode, difficulty model.Difficulty, wordCount int, customText string) string {
	switch mode {
	case model.ModeCustom:
		return customText
	case model.ModeQuotes:
		return Quotes[g.rnd.Intn(len(Quotes))]
	case model.ModeZen:
		return g.words(difficulty, zenWordCount, 0)
	case model.ModeNumbers:
		return g.numbers(wordCount)
	case model.ModePunctuation:
		return g.words(difficulty, wordCount, punctPct)
	default:
		return g.words(difficulty, wordCount, 0)
	}
}

func (g *Generator) tier(d model.Difficulty) []string {
	if words, ok := g.vocab[d]; ok && len(words) > 0 {
		return words
	}
	return g.vocab[model.DifficultyEasy]
}

func (g *Generator) words(d model.Difficulty, count int, punct float64) string {
	if count <= 0 {
		return ""
	}
	words := g.tier(d)
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyPunct(g.rnd, word, punct, punctuationMarks)
		result = append(result, word)
	}
	return strings.Join(result, " ")
}

func (g *Generator) numbers(count int) string {
	if count <= 0 {
		return ""
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if g.rnd.Float64() < numberPct {
			result = append(result, strconv.Itoa(g.rnd.Intn(numberMax)))
			continue
		}
		result = append(result, numberSymbols[g.rnd.Intn(len(numberSymbols))])
	}
	return strings.Join(result, " ")
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() >= punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
