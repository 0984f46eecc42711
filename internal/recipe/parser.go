package recipe

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a tagged field is missing or unparseable.
const (
	defaultTitle       = "Generated Recipe"
	defaultDescription = "A delicious recipe created just for you"
	defaultCookingTime = 30
)

var defaultInstructions = []string{
	"Prepare and clean all ingredients",
	"Heat a pan over medium heat",
	"Cook ingredients until done",
	"Season to taste and serve",
}

// stepNumber matches a leading "1." / "2 " style prefix on an instruction.
var stepNumber = regexp.MustCompile(`^\d+\.?\s*`)

var nonDigits = regexp.MustCompile(`\D`)

// ParseGenerated extracts a Recipe from the tagged text returned by the
// model. The expected shape is one "TAG: value" line per field (TITLE,
// DESCRIPTION, INGREDIENTS, INSTRUCTIONS, COOKING_TIME, DIFFICULTY), matched
// case-insensitively and in any order; other lines are ignored. Every field
// falls back to a default when missing or unparseable, so the function is
// total: any input yields a usable Recipe. The ingredient list falls back to
// fallbackIngredients, each formatted as "1 cup <name>".
func ParseGenerated(raw string, fallbackIngredients []string) Recipe {
	title := defaultTitle
	description := defaultDescription
	var ingredients []string
	var instructions []string
	cookingTime := defaultCookingTime
	difficulty := DifficultyMedium

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case hasTag(line, "TITLE:"):
			title = tagValue(line)
		case hasTag(line, "DESCRIPTION:"):
			description = tagValue(line)
		case hasTag(line, "INGREDIENTS:"):
			ingredients = splitList(tagValue(line), ",")
		case hasTag(line, "INSTRUCTIONS:"):
			steps := splitList(tagValue(line), "|")
			instructions = instructions[:0]
			for _, step := range steps {
				instructions = append(instructions, stepNumber.ReplaceAllString(step, ""))
			}
		case hasTag(line, "COOKING_TIME:"):
			digits := nonDigits.ReplaceAllString(tagValue(line), "")
			if n, err := strconv.Atoi(digits); err == nil {
				cookingTime = n
			} else {
				cookingTime = defaultCookingTime
			}
		case hasTag(line, "DIFFICULTY:"):
			difficulty = ParseDifficulty(strings.ToUpper(tagValue(line)))
		}
	}

	if len(ingredients) == 0 {
		for _, name := range fallbackIngredients {
			ingredients = append(ingredients, "1 cup "+name)
		}
	}
	if len(instructions) == 0 {
		instructions = append([]string(nil), defaultInstructions...)
	}

	return Recipe{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		Ingredients:  ingredients,
		Instructions: instructions,
		CookingTime:  cookingTime,
		Difficulty:   difficulty,
		CreatedAt:    time.Now(),
		IsFavorite:   false,
	}
}

// Fallback builds the fixed local recipe used when the generation call
// itself fails. Distinct from the parser defaults: this never sees model
// output at all.
func Fallback(ingredientNames []string) Recipe {
	first := "Ingredient"
	if len(ingredientNames) > 0 {
		first = ingredientNames[0]
	}

	var ingredients []string
	for _, name := range ingredientNames {
		ingredients = append(ingredients, "1 cup "+name)
	}

	return Recipe{
		ID:          uuid.NewString(),
		Title:       "Simple " + first + " Dish",
		Description: "A quick and easy recipe using your available ingredients",
		Ingredients: ingredients,
		Instructions: []string{
			"Prepare all ingredients",
			"Cook according to standard methods",
			"Season to taste",
			"Serve hot",
		},
		CookingTime: defaultCookingTime,
		Difficulty:  DifficultyEasy,
		CreatedAt:   time.Now(),
		IsFavorite:  false,
	}
}

func hasTag(line, tag string) bool {
	return len(line) >= len(tag) && strings.EqualFold(line[:len(tag)], tag)
}

func tagValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}

func splitList(value, sep string) []string {
	var out []string
	for _, item := range strings.Split(value, sep) {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
