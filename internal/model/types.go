// Package model defines shared data structures.
package model

import "time"

// Mode selects how the target text is produced and which rules apply while typing.
type Mode string

// Supported typing modes.
const (
	ModeNormal      Mode = "normal"
	ModePunctuation Mode = "punctuation"
	ModeNumbers     Mode = "numbers"
	ModeQuotes      Mode = "quotes"
	ModeCustom      Mode = "custom"
	ModeZen         Mode = "zen"
	ModeHard        Mode = "hard"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeNormal, ModePunctuation, ModeNumbers, ModeQuotes, ModeCustom, ModeZen, ModeHard}

// Difficulty selects the vocabulary tier.
type Difficulty string

// Supported difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every supported difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// TestType selects how a test terminates.
type TestType string

// Supported test types.
const (
	TestTypeTime  TestType = "time"
	TestTypeWords TestType = "words"
)

// Settings defines one test configuration. It is immutable once a session starts.
type Settings struct {
	Mode         Mode       `json:"mode" validate:"required,oneof=normal punctuation numbers quotes custom zen hard"`
	Difficulty   Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	TestType     TestType   `json:"testType" validate:"required,oneof=time words"`
	TimeLimit    int        `json:"timeLimit" validate:"required_if=TestType time,gte=0"`
	WordLimit    int        `json:"wordLimit" validate:"gt=0"`
	CustomText   string     `json:"customText"`
	SoundEnabled bool       `json:"soundEnabled"`
}

// CharStatus is the typing status of a single target character.
type CharStatus int

// Character statuses.
const (
	StatusUntyped CharStatus = iota
	StatusCurrent
	StatusCorrect
	StatusIncorrect
)

func (s CharStatus) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	default:
		return "untyped"
	}
}

// CharacterState tracks one character of the target text.
// A zero Timestamp means the character has not been typed.
type CharacterState struct {
	Char      rune
	Status    CharStatus
	Timestamp time.Time
}

// TypingStats is a statistics snapshot for a session.
type TypingStats struct {
	WPM             int     `json:"wpm"`
	NetWPM          int     `json:"netWpm"`
	Accuracy        int     `json:"accuracy"`
	CharactersTyped int     `json:"charactersTyped"`
	Backspaces      int     `json:"backspaces"`
	TimeElapsed     int64   `json:"timeElapsed"`
	CurrentStreak   int     `json:"currentStreak"`
	KeyLatencies    []int64 `json:"keyLatencies"`
	ErrorsCount     int     `json:"errorsCount"`
}

// TypingState is the full state of one session.
type TypingState struct {
	Text         []rune
	Characters   []CharacterState
	CurrentIndex int
	IsActive     bool
	IsComplete   bool
	StartTime    time.Time
	Stats        TypingStats
}

// Clone returns a deep copy of the state.
func (s TypingState) Clone() TypingState {
	out := s
	out.Text = append([]rune(nil), s.Text...)
	out.Characters = append([]CharacterState(nil), s.Characters...)
	out.Stats.KeyLatencies = append([]int64(nil), s.Stats.KeyLatencies...)
	return out
}

// TestResult captures a completed test.
type TestResult struct {
	TypingStats
	Mode        Mode       `json:"mode"`
	Difficulty  Difficulty `json:"difficulty"`
	TextLength  int        `json:"textLength"`
	CompletedAt time.Time  `json:"completedAt"`
}

// LeaderboardEntry is a submitted result as kept by the leaderboard store.
type LeaderboardEntry struct {
	ID         string     `json:"id" validate:"required"`
	Username   string     `json:"username" validate:"required,max=64"`
	WPM        int        `json:"wpm" validate:"gte=0"`
	NetWPM     int        `json:"netWpm" validate:"gte=0"`
	Accuracy   int        `json:"accuracy" validate:"gte=0,lte=100"`
	Mode       Mode       `json:"mode" validate:"required,oneof=normal punctuation numbers quotes custom zen hard"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ResultRecord is a stored TestResult with its store id.
type ResultRecord struct {
	ID             int64
	Result         TestResult
	AverageLatency int64
}
