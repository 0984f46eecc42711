// Package app wires the repositories and services together behind the
// operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ffridge/internal/chat"
	"ffridge/internal/chef"
	"ffridge/internal/clipper"
	"ffridge/internal/config"
	"ffridge/internal/dateutil"
	"ffridge/internal/ingredient"
	"ffridge/internal/metrics"
	"ffridge/internal/recipe"
	"ffridge/internal/user"

	"github.com/google/uuid"
)

// App holds the application's dependencies.
type App struct {
	ingredientRepo *ingredient.Repository
	ingredientSvc  *ingredient.Service
	recipeRepo     *recipe.Repository
	chatSvc        *chat.Service
	sousChef       *chef.Chef
	recipeClipper  *clipper.Clipper
	userStore      *user.Store
	sessions       *user.SessionManager
	metricsStore   *metrics.Store
	cfg            *config.Config
}

// NewApp creates and initializes a new App instance.
func NewApp(
	ingredientRepo *ingredient.Repository,
	ingredientSvc *ingredient.Service,
	recipeRepo *recipe.Repository,
	chatSvc *chat.Service,
	sousChef *chef.Chef,
	recipeClipper *clipper.Clipper,
	userStore *user.Store,
	sessions *user.SessionManager,
	metricsStore *metrics.Store,
	cfg *config.Config,
) *App {
	return &App{
		ingredientRepo: ingredientRepo,
		ingredientSvc:  ingredientSvc,
		recipeRepo:     recipeRepo,
		chatSvc:        chatSvc,
		sousChef:       sousChef,
		recipeClipper:  recipeClipper,
		userStore:      userStore,
		sessions:       sessions,
		metricsStore:   metricsStore,
		cfg:            cfg,
	}
}

// AddIngredient validates and stores a new fridge item.
func (a *App) AddIngredient(ctx context.Context, input ingredient.Input) error {
	ing, err := a.ingredientSvc.Add(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s %s %s (%s %s)\n",
		ing.Quantity, ing.Unit, ing.Name,
		ingredient.CategoryIcons[ing.Category], ing.Category)
	return nil
}

// ListIngredients prints every fridge item with its expiry badge.
func (a *App) ListIngredients(ctx context.Context) error {
	items, err := a.ingredientRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Your fridge is empty.")
		return nil
	}

	now := time.Now()
	for _, ing := range items {
		expiry := "no expiry"
		if ing.ExpiryDate != nil {
			expiry = dateutil.FormatDate(*ing.ExpiryDate)
		}
		fmt.Printf("%s %-20s %5s %-5s %-11s %s\n",
			ingredient.CategoryIcons[ing.Category], ing.Name,
			ing.Quantity, ing.Unit, expiry,
			ingredient.CheckExpiry(ing.ExpiryDate, now))
	}
	return nil
}

// ShowExpiring prints the items expiring within daysAhead days.
func (a *App) ShowExpiring(ctx context.Context, daysAhead int) error {
	items, err := a.ingredientRepo.GetExpiring(ctx, daysAhead, time.Now())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Printf("Nothing expires in the next %d days.\n", daysAhead)
		return nil
	}
	for _, ing := range items {
		fmt.Printf("%-20s expires %s\n", ing.Name, dateutil.RelativeTime(*ing.ExpiryDate, time.Now()))
	}
	return nil
}

// ShowExpiringToday prints the items whose expiry date falls on today's
// calendar day.
func (a *App) ShowExpiringToday(ctx context.Context) error {
	items, err := a.ingredientRepo.GetExpiringToday(ctx, time.Now())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing expires today.")
		return nil
	}
	for _, ing := range items {
		fmt.Printf("%-20s expires today (%s)\n", ing.Name, dateutil.FormatDate(*ing.ExpiryDate))
	}
	return nil
}

// DeleteExpired removes every item already past its expiry date.
func (a *App) DeleteExpired(ctx context.Context) error {
	removed, err := a.ingredientSvc.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d expired ingredients.\n", removed)
	return nil
}

// GenerateRecipe creates and saves a recipe from the named ingredients, or
// from everything in the fridge when no names are given.
func (a *App) GenerateRecipe(ctx context.Context, names []string) error {
	if len(names) == 0 {
		items, err := a.ingredientRepo.GetAll(ctx)
		if err != nil {
			return err
		}
		for _, ing := range items {
			names = append(names, ing.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no ingredients to cook with: add some first or name them explicitly")
	}

	rec, err := a.sousChef.GenerateRecipe(ctx, names)
	if err != nil {
		return err
	}
	if err := a.recipeRepo.Insert(ctx, rec); err != nil {
		return err
	}

	printRecipe(rec)
	return nil
}

// ImportRecipe clips a recipe from a web page into the recipe book.
func (a *App) ImportRecipe(ctx context.Context, url string) error {
	rec, err := a.recipeClipper.ClipURL(ctx, url)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %q (%d min, %s)\n", rec.Title, rec.CookingTime, rec.Difficulty)
	return nil
}

// ListRecipes prints the saved recipes, newest first.
func (a *App) ListRecipes(ctx context.Context) error {
	recipes, err := a.recipeRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		fmt.Println("No saved recipes yet.")
		return nil
	}
	for _, rec := range recipes {
		favorite := " "
		if rec.IsFavorite {
			favorite = "*"
		}
		fmt.Printf("%s %-30s %3d min  %s\n", favorite, rec.Title, rec.CookingTime, rec.Difficulty)
	}
	return nil
}

// Chat sends one message to the assistant and prints the reply.
func (a *App) Chat(ctx context.Context, message string) error {
	if err := a.chatSvc.EnsureWelcome(ctx); err != nil {
		return err
	}
	reply, err := a.chatSvc.Send(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(reply.Text)
	return nil
}

// StorageTips prints advice on keeping an ingredient fresh.
func (a *App) StorageTips(ctx context.Context, name string) error {
	fmt.Println(a.sousChef.GetStorageTips(ctx, name))
	return nil
}

// Substitutions prints alternatives for an ingredient.
func (a *App) Substitutions(ctx context.Context, name string) error {
	fmt.Println(a.sousChef.GetSubstitutions(ctx, name))
	return nil
}

// ShowSettings prints the current preferences.
func (a *App) ShowSettings() error {
	settings, err := a.userStore.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("expiry-notifications: %t\n", settings.ExpiryNotifications)
	fmt.Printf("theme:                %s\n", settings.Theme)
	fmt.Printf("ui-scale:             %.2f\n", settings.UIScale)
	fmt.Printf("notification-time:    %s\n", settings.NotificationTime)
	return nil
}

// SetSetting updates a single preference by key.
func (a *App) SetSetting(key, value string) error {
	switch key {
	case "expiry-notifications":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expiry-notifications must be true or false")
		}
		return a.userStore.UpdateExpiryNotifications(enabled)
	case "theme":
		return a.userStore.UpdateTheme(user.ParseTheme(value))
	case "ui-scale":
		scale, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("ui-scale must be a number")
		}
		return a.userStore.UpdateUIScale(scale)
	case "notification-time":
		return a.userStore.UpdateNotificationTime(value)
	}
	return fmt.Errorf("unknown setting %q", key)
}

// ResetSettings wipes the account and restores default preferences.
func (a *App) ResetSettings() error {
	if err := a.userStore.ClearAll(); err != nil {
		return err
	}
	fmt.Println("Settings reset to defaults.")
	return nil
}

// Login records the account locally and prints a session token.
func (a *App) Login(displayName, email string) error {
	u := user.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
	}
	if err := a.userStore.SaveUser(u); err != nil {
		return err
	}
	token, err := a.sessions.Issue(u)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", u.DisplayName, u.Email)
	fmt.Printf("Session token: %s\n", token)
	return nil
}

// Logout signs the account out, keeping preferences.
func (a *App) Logout() error {
	if err := a.userStore.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// ShowUsage prints model token usage for the last N days.
func (a *App) ShowUsage(ctx context.Context, days int) error {
	usage, err := a.metricsStore.GetDailyUsage(ctx, days)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("No model usage recorded.")
		return nil
	}
	fmt.Printf("%-12s %8s %12s %6s\n", "Day", "Prompt", "Completion", "Calls")
	for _, day := range usage {
		fmt.Printf("%-12s %8d %12d %6d\n", day.Date, day.TotalPrompt, day.TotalCompletion, day.TotalCalls)
	}

	health := metrics.GetSysHealth(a.cfg.DataDir)
	fmt.Printf("\nData on disk: %s  Goroutines: %d  Heap: %d MB\n",
		health.DataDiskSize, health.Goroutines, health.AllocMB)
	return nil
}

func printRecipe(rec recipe.Recipe) {
	fmt.Printf("\n%s\n%s\n\n", rec.Title, rec.Description)
	fmt.Println("Ingredients:")
	for _, ing := range rec.Ingredients {
		fmt.Printf("  - %s\n", ing)
	}
	fmt.Println("\nInstructions:")
	for i, step := range rec.Instructions {
		fmt.Printf("  %d. %s\n", i+1, step)
	}
	fmt.Printf("\nCooking time: %d min  Difficulty: %s\n", rec.CookingTime, rec.Difficulty)
}
