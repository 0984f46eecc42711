// Package chef turns ingredient lists and kitchen questions into prompts for
// the language model and shapes the raw responses into domain values.
package chef

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"ffridge/internal/chat"
	"ffridge/internal/llm"
	"ffridge/internal/recipe"
)

//go:embed system_prompt.md
var SystemPrompt string

//go:embed recipe_prompt.md
var recipePrompt string

// chatHistoryLimit bounds how many prior messages accompany a chat request.
const chatHistoryLimit = 5

const emptyReplyText = "I'm sorry, I couldn't generate a response. Please try again."

// Chef is the conversational cooking assistant.
type Chef struct {
	textGen llm.TextGenerator
	chatGen llm.ChatGenerator
}

// New creates a new Chef.
func New(textGen llm.TextGenerator, chatGen llm.ChatGenerator) *Chef {
	return &Chef{
		textGen: textGen,
		chatGen: chatGen,
	}
}

// SendMessage answers a chat message using the newest chatHistoryLimit prior
// messages as context. An empty model reply is replaced with an apology so
// the conversation never shows a blank bubble.
func (c *Chef) SendMessage(ctx context.Context, message string, history []chat.Message) (string, error) {
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}

	turns := make([]llm.Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, llm.Turn{
			Role: strings.ToLower(string(msg.Role)),
			Text: msg.Text,
		})
	}

	reply, err := c.chatGen.SendMessage(ctx, message, turns)
	if err != nil {
		return "", fmt.Errorf("failed to get AI response: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return emptyReplyText, nil
	}
	return reply, nil
}

// GenerateRecipe creates a recipe from the named ingredients. When the model
// call fails or returns nothing usable, a simple stand-in recipe built from
// the same ingredients is returned instead of an error.
func (c *Chef) GenerateRecipe(ctx context.Context, ingredientNames []string) (recipe.Recipe, error) {
	prompt, err := buildRecipePrompt(ingredientNames)
	if err != nil {
		return recipe.Recipe{}, err
	}

	raw, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil || strings.TrimSpace(raw) == "" {
		return recipe.Fallback(ingredientNames), nil
	}
	return recipe.ParseGenerated(raw, ingredientNames), nil
}

// GetStorageTips asks how to keep an ingredient fresh.
func (c *Chef) GetStorageTips(ctx context.Context, ingredientName string) string {
	prompt := fmt.Sprintf(
		"How should I store %s to keep it fresh?\nProvide 2-3 practical tips in bullet points.\nKeep it concise and actionable.",
		ingredientName)

	reply, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "Store properly to maintain freshness."
	}
	if strings.TrimSpace(reply) == "" {
		return "Store in a cool, dry place."
	}
	return reply
}

// GetSubstitutions asks for alternatives to an ingredient.
func (c *Chef) GetSubstitutions(ctx context.Context, ingredientName string) string {
	prompt := fmt.Sprintf(
		"What can I substitute for %s in cooking?\nProvide 2-3 alternatives with brief explanations.\nFormat as bullet points.",
		ingredientName)

	reply, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "Unable to suggest substitutions."
	}
	if strings.TrimSpace(reply) == "" {
		return "No substitutions available."
	}
	return reply
}

// GetCookingTip asks for one quick tip in the given category.
func (c *Chef) GetCookingTip(ctx context.Context, category string) string {
	prompt := fmt.Sprintf(
		"Give me one quick, practical %s tip for home cooks. Keep it under 50 words.",
		category)

	reply, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "Unable to fetch cooking tip at the moment."
	}
	if strings.TrimSpace(reply) == "" {
		return "Check back later for cooking tips!"
	}
	return reply
}

func buildRecipePrompt(ingredientNames []string) (string, error) {
	tmpl, err := template.New("recipe").Parse(recipePrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct{ IngredientList string }{
		IngredientList: strings.Join(ingredientNames, ", "),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
