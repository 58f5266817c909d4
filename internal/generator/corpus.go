package generator

import "github.com/verte-zerg/typemaster/internal/model"

const zenWordCount = 200

var commonWords = map[model.Difficulty][]string{
	model.DifficultyEasy: {
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i", "it", "for", "not", "on", "with",
		"he", "as", "you", "do", "at", "this", "but", "his", "by", "from", "they", "we", "say", "her",
		"she", "or", "an", "will", "my", "one", "all", "would", "there", "their", "what", "so", "up",
		"out", "if", "about", "who", "get", "which", "go", "me", "when", "make", "can", "like", "time",
		"no", "just", "him", "know", "take", "people", "into", "year", "your", "good", "some", "could",
		"them", "see", "other", "than", "then", "now", "look", "only", "come", "its", "over", "think",
	},
	model.DifficultyMedium: {
		"through", "back", "much", "before", "move", "right", "boy", "old", "too", "same", "tell", "does",
		"set", "three", "want", "air", "well", "also", "play", "small", "end", "put", "home", "read",
		"hand", "port", "large", "spell", "add", "even", "land", "here", "must", "big", "high", "such",
		"follow", "act", "why", "ask", "men", "change", "went", "light", "kind", "off", "need", "house",
		"picture", "try", "us", "again", "animal", "point", "mother", "world", "near", "build", "self",
		"earth", "father", "head", "stand", "own", "page", "should", "country", "found", "answer",
	},
	model.DifficultyHard: {
		"school", "thought", "still", "learn", "should", "america", "world", "high", "every", "another",
		"example", "begin", "life", "always", "those", "both", "paper", "together", "got", "group",
		"often", "run", "important", "until", "children", "side", "feet", "car", "mile", "night",
		"walk", "white", "sea", "began", "grow", "took", "river", "four", "carry", "state", "once",
		"book", "hear", "stop", "without", "second", "later", "miss", "idea", "enough", "eat", "face",
		"watch", "far", "indian", "really", "almost", "let", "above", "girl", "sometimes", "mountain",
	},
}

var punctuationMarks = []rune{',', '.', ';', ':', '!', '?', '"', '\''}

var numberSymbols = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "+", "-", "*", "/", "=", "(", ")"}

// Quotes is the fixed quotation corpus used by the quotes mode.
var Quotes = []string{
	"The only way to do great work is to love what you do.",
	"Innovation distinguishes between a leader and a follower.",
	"Stay hungry, stay foolish.",
	"The future belongs to those who believe in the beauty of their dreams.",
	"It is during our darkest moments that we must focus to see the light.",
	"Success is not final, failure is not fatal: it is the courage to continue that counts.",
	"The only impossible journey is the one you never begin.",
	"In the middle of difficulty lies opportunity.",
	"Believe you can and you're halfway there.",
	"The best time to plant a tree was 20 years ago. The second best time is now.",
}
