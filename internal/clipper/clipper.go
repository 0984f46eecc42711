// Package clipper imports recipes from web pages into the recipe book.
package clipper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ffridge/internal/llm"
	"ffridge/internal/recipe"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches a recipe web page, has the model restate it in the tagged
// recipe format, and saves the result.
type Clipper struct {
	repo       *recipe.Repository
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(repo *recipe.Repository, textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		repo:       repo,
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts the recipe, and stores it. The returned
// recipe is already persisted.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	content, err := c.fetchAndCleanHTML(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe from the following page text.
Return ONLY the recipe in this EXACT format (no extra text):

TITLE: [Recipe name]
DESCRIPTION: [1-2 sentence description]
INGREDIENTS: [ingredient 1], [ingredient 2], [ingredient 3], etc.
INSTRUCTIONS: [Step 1] | [Step 2] | [Step 3] | etc.
COOKING_TIME: [total time in minutes as a number]
DIFFICULTY: [EASY or MEDIUM or HARD]

Page text:
%s
`, content)

	raw, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	rec := recipe.ParseGenerated(raw, nil)
	if err := c.repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}
	return &rec, nil
}

func (c *Clipper) fetchAndCleanHTML(url string) (string, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
