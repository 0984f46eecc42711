package recipe

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ffridge/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func testRecipe(id, title string) Recipe {
	return Recipe{
		ID:           id,
		Title:        title,
		Description:  "A test recipe",
		Ingredients:  []string{"1 cup flour", "2 eggs"},
		Instructions: []string{"Mix", "Bake"},
		CookingTime:  25,
		Difficulty:   DifficultyEasy,
		CreatedAt:    time.Now(),
	}
}

func TestRepositoryCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := testRecipe("r1", "Pancakes")
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected recipe, got nil")
	}
	if got.Title != "Pancakes" {
		t.Errorf("expected title Pancakes, got %q", got.Title)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0] != "1 cup flour" {
		t.Errorf("ingredients not round-tripped: %v", got.Ingredients)
	}
	if len(got.Instructions) != 2 || got.Instructions[1] != "Bake" {
		t.Errorf("instructions not round-tripped: %v", got.Instructions)
	}
	if got.Difficulty != DifficultyEasy {
		t.Errorf("expected difficulty EASY, got %s", got.Difficulty)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByID for missing recipe failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing recipe")
	}

	if err := repo.DeleteByID(ctx, "r1"); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 recipes after delete, got %d", count)
	}
}

func TestToggleFavorite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := testRecipe("r1", "Pancakes")
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := repo.ToggleFavorite(ctx, "r1"); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	got, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsFavorite {
		t.Error("expected favorite after first toggle")
	}

	if err := repo.ToggleFavorite(ctx, "r1"); err != nil {
		t.Fatalf("second ToggleFavorite failed: %v", err)
	}
	got, err = repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsFavorite {
		t.Error("expected not favorite after second toggle")
	}
	if got.Title != rec.Title || got.CookingTime != rec.CookingTime {
		t.Error("toggling favorite altered other fields")
	}

	// Missing IDs are a no-op, not an error.
	if err := repo.ToggleFavorite(ctx, "nope"); err != nil {
		t.Errorf("ToggleFavorite for missing recipe failed: %v", err)
	}
}

func TestFilterQueries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	quick := testRecipe("r1", "Quick Salad")
	quick.CookingTime = 10

	slow := testRecipe("r2", "Slow Stew")
	slow.CookingTime = 120
	slow.Difficulty = DifficultyHard
	slow.Description = "Hearty winter dish"

	for _, rec := range []Recipe{quick, slow} {
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	if err := repo.SetFavorite(ctx, "r2", true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}

	t.Run("favorites", func(t *testing.T) {
		got, err := repo.GetFavorites(ctx)
		if err != nil {
			t.Fatalf("GetFavorites failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "r2" {
			t.Errorf("expected only r2, got %v", got)
		}
	})

	t.Run("difficulty", func(t *testing.T) {
		got, err := repo.GetByDifficulty(ctx, DifficultyHard)
		if err != nil {
			t.Fatalf("GetByDifficulty failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "r2" {
			t.Errorf("expected only r2, got %v", got)
		}
	})

	t.Run("quick", func(t *testing.T) {
		got, err := repo.GetQuick(ctx)
		if err != nil {
			t.Fatalf("GetQuick failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "r1" {
			t.Errorf("expected only r1, got %v", got)
		}
	})

	t.Run("search matches description", func(t *testing.T) {
		got, err := repo.Search(ctx, "winter")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != "r2" {
			t.Errorf("expected only r2, got %v", got)
		}
	})
}

func TestWatchAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch := repo.WatchAll(ctx)

	first := <-ch
	if len(first) != 0 {
		t.Errorf("expected empty initial snapshot, got %d recipes", len(first))
	}

	if err := repo.Insert(ctx, testRecipe("r1", "Pancakes")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	second := <-ch
	if len(second) != 1 || second[0].ID != "r1" {
		t.Errorf("expected snapshot with r1, got %v", second)
	}
}
