package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ffridge/internal/database"
)

const selectColumns = "id, title, description, ingredients, instructions, cooking_time, difficulty, image_url, created_at, is_favorite"

// Repository is a database-backed repository for recipes. The ingredient and
// instruction lists are stored as JSON arrays in text columns.
type Repository struct {
	db  *sql.DB
	hub *database.Hub
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		db:  d,
		hub: database.NewHub(),
	}
}

// GetAll returns every recipe, newest first.
func (r *Repository) GetAll(ctx context.Context) ([]Recipe, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM recipes ORDER BY created_at DESC")
}

// GetByID retrieves a recipe by its ID. Returns nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM recipes WHERE id = ?", id)

	rec, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}
	return rec, nil
}

// Insert adds a recipe. An existing row with the same ID is replaced.
func (r *Repository) Insert(ctx context.Context, rec Recipe) error {
	ingredientsJSON, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe ingredients: %w", err)
	}
	instructionsJSON, err := json.Marshal(rec.Instructions)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe instructions: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO recipes
			(id, title, description, ingredients, instructions, cooking_time, difficulty, image_url, created_at, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Description, string(ingredientsJSON), string(instructionsJSON),
		rec.CookingTime, string(rec.Difficulty), nullIfEmpty(rec.ImageURL),
		rec.CreatedAt.UnixMilli(), rec.IsFavorite)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	r.hub.Notify()
	return nil
}

// Update fully replaces the stored row for the recipe's ID.
func (r *Repository) Update(ctx context.Context, rec Recipe) error {
	return r.Insert(ctx, rec)
}

// DeleteByID removes a single recipe.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	r.hub.Notify()
	return nil
}

// DeleteAll removes every recipe.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM recipes"); err != nil {
		return fmt.Errorf("failed to delete all recipes: %w", err)
	}
	r.hub.Notify()
	return nil
}

// SetFavorite flips only the favorite flag of a recipe.
func (r *Repository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE recipes SET is_favorite = ? WHERE id = ?", favorite, id); err != nil {
		return fmt.Errorf("failed to set favorite status: %w", err)
	}
	r.hub.Notify()
	return nil
}

// ToggleFavorite inverts the favorite flag of a recipe. Missing IDs are a
// no-op.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) error {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	return r.SetFavorite(ctx, id, !rec.IsFavorite)
}

// GetFavorites returns recipes flagged as favorite, newest first.
func (r *Repository) GetFavorites(ctx context.Context) ([]Recipe, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM recipes WHERE is_favorite = 1 ORDER BY created_at DESC")
}

// GetByDifficulty returns recipes of the given difficulty, newest first.
func (r *Repository) GetByDifficulty(ctx context.Context, difficulty Difficulty) ([]Recipe, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM recipes WHERE difficulty = ? ORDER BY created_at DESC",
		string(difficulty))
}

// GetByMaxTime returns recipes cookable within maxMinutes, fastest first.
func (r *Repository) GetByMaxTime(ctx context.Context, maxMinutes int) ([]Recipe, error) {
	return r.query(ctx,
		"SELECT "+selectColumns+" FROM recipes WHERE cooking_time <= ? ORDER BY cooking_time ASC",
		maxMinutes)
}

// GetQuick returns recipes cookable in QuickRecipeMaxMinutes or less.
func (r *Repository) GetQuick(ctx context.Context) ([]Recipe, error) {
	return r.GetByMaxTime(ctx, QuickRecipeMaxMinutes)
}

// Search matches the title or description by substring, case-insensitively.
func (r *Repository) Search(ctx context.Context, query string) ([]Recipe, error) {
	return r.query(ctx, `
		SELECT `+selectColumns+` FROM recipes
		WHERE title LIKE '%' || ? || '%' OR description LIKE '%' || ? || '%'
		ORDER BY created_at DESC`,
		query, query)
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// WatchAll emits every recipe on subscribe and after every write.
func (r *Repository) WatchAll(ctx context.Context) <-chan []Recipe {
	return database.Watch(ctx, r.hub, r.GetAll)
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe rows: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var (
		rec              Recipe
		ingredientsJSON  string
		instructionsJSON string
		difficulty       string
		imageURL         sql.NullString
		createdAt        int64
	)
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &ingredientsJSON,
		&instructionsJSON, &rec.CookingTime, &difficulty, &imageURL,
		&createdAt, &rec.IsFavorite)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ingredientsJSON), &rec.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe ingredients: %w", err)
	}
	if err := json.Unmarshal([]byte(instructionsJSON), &rec.Instructions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe instructions: %w", err)
	}

	rec.Difficulty = ParseDifficulty(difficulty)
	rec.ImageURL = imageURL.String
	rec.CreatedAt = time.UnixMilli(createdAt)
	return &rec, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
