package ingredient

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ffridge/internal/database"
	"ffridge/internal/dateutil"
)

const selectColumns = "id, name, quantity, unit, category, expiry_date, added_date, notes, image_url"

// Repository is a database-backed repository for ingredients.
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

// GetAll returns every ingredient, most recently added first.
func (r *Repository) GetAll(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM ingredients ORDER BY added_date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return scanIngredients(rows)
}

// GetByID retrieves an ingredient by its ID. Returns nil when not found.
func (r *Repository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM ingredients WHERE id = ?", id)

	ing, err := scanIngredient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}
	return ing, nil
}

// Insert adds an ingredient. An existing row with the same ID is replaced.
func (r *Repository) Insert(ctx context.Context, ing Ingredient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO ingredients
			(id, name, quantity, unit, category, expiry_date, added_date, notes, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ing.ID, ing.Name, ing.Quantity, ing.Unit, string(ing.Category),
		millisOrNil(ing.ExpiryDate), ing.AddedDate.UnixMilli(),
		nullIfEmpty(ing.Notes), nullIfEmpty(ing.ImageURL))
	if err != nil {
		return fmt.Errorf("failed to insert ingredient: %w", err)
	}
	r.hub.Notify()
	return nil
}

// Update replaces the stored row for the ingredient's ID. Last write wins.
func (r *Repository) Update(ctx context.Context, ing Ingredient) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE ingredients
		SET name = ?, quantity = ?, unit = ?, category = ?, expiry_date = ?,
		    added_date = ?, notes = ?, image_url = ?
		WHERE id = ?`,
		ing.Name, ing.Quantity, ing.Unit, string(ing.Category),
		millisOrNil(ing.ExpiryDate), ing.AddedDate.UnixMilli(),
		nullIfEmpty(ing.Notes), nullIfEmpty(ing.ImageURL), ing.ID)
	if err != nil {
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	r.hub.Notify()
	return nil
}

// DeleteByID removes a single ingredient.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM ingredients WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	r.hub.Notify()
	return nil
}

// DeleteAll removes every ingredient.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM ingredients"); err != nil {
		return fmt.Errorf("failed to delete all ingredients: %w", err)
	}
	r.hub.Notify()
	return nil
}

// GetByCategory returns ingredients in a category, most recently added first.
func (r *Repository) GetByCategory(ctx context.Context, category Category) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM ingredients WHERE category = ? ORDER BY added_date DESC",
		string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients by category: %w", err)
	}
	return scanIngredients(rows)
}

// Search matches the ingredient name by substring, case-insensitively.
func (r *Repository) Search(ctx context.Context, query string) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM ingredients WHERE name LIKE '%' || ? || '%' ORDER BY added_date DESC",
		query)
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	return scanIngredients(rows)
}

// GetExpiring returns ingredients whose expiry date lies within
// [now, now + daysAhead days], both bounds inclusive, soonest first.
func (r *Repository) GetExpiring(ctx context.Context, daysAhead int, now time.Time) ([]Ingredient, error) {
	lower := now.UnixMilli()
	upper := now.Add(time.Duration(daysAhead) * dateutil.Day).UnixMilli()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectColumns+` FROM ingredients
		WHERE expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?
		ORDER BY expiry_date ASC`,
		lower, upper)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring ingredients: %w", err)
	}
	return scanIngredients(rows)
}

// GetExpiringToday returns ingredients whose expiry date falls on now's
// calendar day. Unlike GetExpiring this uses calendar-day bounds, because the
// badge it backs reads "today" in wall-clock terms.
func (r *Repository) GetExpiringToday(ctx context.Context, now time.Time) ([]Ingredient, error) {
	lower := dateutil.StartOfDay(now).UnixMilli()
	upper := dateutil.EndOfDay(now).UnixMilli()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectColumns+` FROM ingredients
		WHERE expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?
		ORDER BY expiry_date ASC`,
		lower, upper)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients expiring today: %w", err)
	}
	return scanIngredients(rows)
}

// GetExpired returns ingredients whose expiry date is strictly before now.
func (r *Repository) GetExpired(ctx context.Context, now time.Time) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectColumns+` FROM ingredients
		WHERE expiry_date IS NOT NULL AND expiry_date < ?
		ORDER BY expiry_date ASC`,
		now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list expired ingredients: %w", err)
	}
	return scanIngredients(rows)
}

// DeleteExpired removes every ingredient with an expiry date strictly before
// now and returns the number of rows removed.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM ingredients WHERE expiry_date IS NOT NULL AND expiry_date < ?",
		now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired ingredients: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted ingredients: %w", err)
	}
	if affected > 0 {
		r.hub.Notify()
	}
	return affected, nil
}

// Count returns the number of ingredients in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ingredients: %w", err)
	}
	return count, nil
}

// WatchAll emits the full inventory on subscribe and after every write.
func (r *Repository) WatchAll(ctx context.Context) <-chan []Ingredient {
	return database.Watch(ctx, r.hub, r.GetAll)
}

// WatchExpiring emits the expiring-within-daysAhead slice on subscribe and
// after every write. The window is re-anchored to the wall clock on each
// emission.
func (r *Repository) WatchExpiring(ctx context.Context, daysAhead int) <-chan []Ingredient {
	return database.Watch(ctx, r.hub, func(ctx context.Context) ([]Ingredient, error) {
		return r.GetExpiring(ctx, daysAhead, time.Now())
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row rowScanner) (*Ingredient, error) {
	var (
		ing       Ingredient
		category  string
		expiry    sql.NullInt64
		addedDate int64
		notes     sql.NullString
		imageURL  sql.NullString
	)
	err := row.Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.Unit, &category,
		&expiry, &addedDate, &notes, &imageURL)
	if err != nil {
		return nil, err
	}

	ing.Category = ParseCategory(category)
	if expiry.Valid {
		t := time.UnixMilli(expiry.Int64)
		ing.ExpiryDate = &t
	}
	ing.AddedDate = time.UnixMilli(addedDate)
	ing.Notes = notes.String
	ing.ImageURL = imageURL.String
	return &ing, nil
}

func scanIngredients(rows *sql.Rows) ([]Ingredient, error) {
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient row: %w", err)
		}
		out = append(out, *ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredient rows: %w", err)
	}
	return out, nil
}

func millisOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
