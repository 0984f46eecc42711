// Package recipe holds the recipe model, the parser for AI-generated recipe
// text and the sqlite-backed repository.
package recipe

import "time"

// Difficulty is the closed set of recipe difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty maps a stored or generated string to a Difficulty. Unknown
// values resolve to DifficultyMedium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s)
	}
	return DifficultyMedium
}

// QuickRecipeMaxMinutes bounds the "quick recipes" convenience query.
const QuickRecipeMaxMinutes = 30

// Recipe is a stored recipe, entered by the user or produced by the
// generation pipeline. Ingredients and Instructions are ordered free text.
type Recipe struct {
	ID           string
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	CookingTime  int // minutes
	Difficulty   Difficulty
	ImageURL     string
	CreatedAt    time.Time
	IsFavorite   bool
}
