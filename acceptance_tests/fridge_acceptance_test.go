package acceptance_tests

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ffridge/internal/app"
	"ffridge/internal/chat"
	"ffridge/internal/chef"
	"ffridge/internal/clipper"
	"ffridge/internal/config"
	"ffridge/internal/database"
	"ffridge/internal/ingredient"
	"ffridge/internal/llm"
	"ffridge/internal/metrics"
	"ffridge/internal/recipe"
	"ffridge/internal/user"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
	sendMessageCalls     int
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.generateContentCalls++
	if strings.Contains(prompt, "Create a delicious and practical recipe") {
		return strings.Join([]string{
			"TITLE: Test Skillet",
			"DESCRIPTION: A dish assembled for testing.",
			"INGREDIENTS: 2 tomatoes, 3 eggs",
			"INSTRUCTIONS: Chop | Cook | Serve",
			"COOKING_TIME: 20",
			"DIFFICULTY: EASY",
		}, "\n"), nil
	}
	return "Generic tip.", nil
}

func (m *mockLLMClient) SendMessage(ctx context.Context, message string, history []llm.Turn) (string, error) {
	m.sendMessageCalls++
	return "Mock chef reply.", nil
}

type testEnv struct {
	app            *app.App
	ingredientRepo *ingredient.Repository
	recipeRepo     *recipe.Repository
	chatRepo       *chat.Repository
	llmClient      *mockLLMClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dataDir := t.TempDir()

	cfg := &config.Config{
		GeminiAPIKey:  "test-key",
		DataDir:       dataDir,
		DatabasePath:  filepath.Join(dataDir, "ffridge.db"),
		PrefsPath:     filepath.Join(dataDir, "user_preferences.json"),
		SessionSecret: "test-secret",
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	llmClient := &mockLLMClient{}

	ingredientRepo := ingredient.NewRepository(db.SQL)
	ingredientSvc := ingredient.NewService(ingredientRepo)
	recipeRepo := recipe.NewRepository(db.SQL)
	chatRepo := chat.NewRepository(db.SQL)

	sousChef := chef.New(llmClient, llmClient)
	chatSvc := chat.NewService(chatRepo, sousChef)
	recipeClipper := clipper.NewClipper(recipeRepo, llmClient)

	userStore, err := user.NewStore(cfg.PrefsPath)
	if err != nil {
		t.Fatalf("Failed to initialize preferences store: %v", err)
	}

	return &testEnv{
		app: app.NewApp(
			ingredientRepo,
			ingredientSvc,
			recipeRepo,
			chatSvc,
			sousChef,
			recipeClipper,
			userStore,
			user.NewSessionManager(cfg.SessionSecret),
			metrics.NewStore(db.SQL),
			cfg,
		),
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		chatRepo:       chatRepo,
		llmClient:      llmClient,
	}
}

func TestFridgeToRecipeFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	expiry := time.Now().Add(48 * time.Hour)
	for _, name := range []string{"tomato", "egg"} {
		err := env.app.AddIngredient(ctx, ingredient.Input{
			Name:       name,
			Quantity:   "2",
			Unit:       "pcs",
			Category:   ingredient.CategoryVegetables,
			ExpiryDate: &expiry,
		})
		if err != nil {
			t.Fatalf("AddIngredient failed: %v", err)
		}
	}

	count, err := env.ingredientRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 ingredients, got %d", count)
	}

	// No names given: the whole fridge feeds the prompt.
	if err := env.app.GenerateRecipe(ctx, nil); err != nil {
		t.Fatalf("GenerateRecipe failed: %v", err)
	}
	if env.llmClient.generateContentCalls != 1 {
		t.Errorf("expected 1 generation call, got %d", env.llmClient.generateContentCalls)
	}

	recipes, err := env.recipeRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll recipes failed: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 saved recipe, got %d", len(recipes))
	}
	if recipes[0].Title != "Test Skillet" {
		t.Errorf("unexpected recipe title: %q", recipes[0].Title)
	}
	if recipes[0].Difficulty != recipe.DifficultyEasy {
		t.Errorf("unexpected difficulty: %s", recipes[0].Difficulty)
	}
}

func TestChatFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.app.Chat(ctx, "How do I store eggs?"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if env.llmClient.sendMessageCalls != 1 {
		t.Errorf("expected 1 chat call, got %d", env.llmClient.sendMessageCalls)
	}

	msgs, err := env.chatRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll messages failed: %v", err)
	}
	// Welcome + user question + model reply.
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Text != chat.WelcomeText {
		t.Errorf("expected welcome message first, got %q", msgs[0].Text)
	}
	if msgs[2].Role != chat.RoleModel || msgs[2].Text != "Mock chef reply." {
		t.Errorf("unexpected reply message: %+v", msgs[2])
	}
}

func TestExpiredCleanupFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(72 * time.Hour)
	for name, expiry := range map[string]time.Time{"old milk": past, "fresh kale": future} {
		exp := expiry
		err := env.app.AddIngredient(ctx, ingredient.Input{
			Name:       name,
			Quantity:   "1",
			Unit:       "pcs",
			ExpiryDate: &exp,
		})
		if err != nil {
			t.Fatalf("AddIngredient failed: %v", err)
		}
	}

	if err := env.app.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}

	remaining, err := env.ingredientRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Name != "fresh kale" {
		t.Errorf("expected only the fresh item to survive, got %+v", remaining)
	}
}
