package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ffridge/internal/app"
	"ffridge/internal/chat"
	"ffridge/internal/chef"
	"ffridge/internal/clipper"
	"ffridge/internal/config"
	"ffridge/internal/database"
	"ffridge/internal/dateutil"
	"ffridge/internal/ingredient"
	"ffridge/internal/llm"
	"ffridge/internal/metrics"
	"ffridge/internal/recipe"
	"ffridge/internal/user"

	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	metricsStore := metrics.NewStore(db.SQL)

	geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, chef.SystemPrompt, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	ingredientRepo := ingredient.NewRepository(db.SQL)
	ingredientSvc := ingredient.NewService(ingredientRepo)
	recipeRepo := recipe.NewRepository(db.SQL)
	chatRepo := chat.NewRepository(db.SQL)

	sousChef := chef.New(geminiClient, geminiClient)
	chatSvc := chat.NewService(chatRepo, sousChef)
	recipeClipper := clipper.NewClipper(recipeRepo, geminiClient)

	userStore, err := user.NewStore(cfg.PrefsPath)
	if err != nil {
		log.Fatalf("Failed to initialize preferences store: %v", err)
	}
	sessions := user.NewSessionManager(cfg.SessionSecret)

	application := app.NewApp(
		ingredientRepo,
		ingredientSvc,
		recipeRepo,
		chatSvc,
		sousChef,
		recipeClipper,
		userStore,
		sessions,
		metricsStore,
		cfg,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := run(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, application *app.App, command string, args []string) error {
	switch command {
	case "add":
		addCmd := flag.NewFlagSet("add", flag.ExitOnError)
		name := addCmd.String("name", "", "Ingredient name")
		quantity := addCmd.String("quantity", "1", "Amount")
		unit := addCmd.String("unit", "pcs", "Unit of measure")
		category := addCmd.String("category", "", "Category (DAIRY, MEAT, PANTRY, FROZEN, VEGETABLES, FRUITS, OTHER)")
		expiry := addCmd.String("expiry", "", "Expiry date (YYYY-MM-DD)")
		notes := addCmd.String("notes", "", "Free-form notes")
		addCmd.Parse(args)

		input := ingredient.Input{
			Name:     *name,
			Quantity: *quantity,
			Unit:     *unit,
			Notes:    *notes,
		}
		if *category != "" {
			input.Category = ingredient.ParseCategory(*category)
		}
		if *expiry != "" {
			parsed := dateutil.ParseStorageDate(*expiry)
			if parsed == nil {
				return fmt.Errorf("invalid expiry date %q: want YYYY-MM-DD", *expiry)
			}
			input.ExpiryDate = parsed
		}
		return application.AddIngredient(ctx, input)

	case "list":
		return application.ListIngredients(ctx)

	case "expiring":
		expiringCmd := flag.NewFlagSet("expiring", flag.ExitOnError)
		days := expiringCmd.Int("days", ingredient.ExpiryWarningDays, "Look-ahead window in days")
		today := expiringCmd.Bool("today", false, "Only items expiring on today's calendar day")
		expiringCmd.Parse(args)
		if *today {
			return application.ShowExpiringToday(ctx)
		}
		return application.ShowExpiring(ctx, *days)

	case "delete-expired":
		return application.DeleteExpired(ctx)

	case "recipe":
		return application.GenerateRecipe(ctx, args)

	case "recipes":
		return application.ListRecipes(ctx)

	case "import":
		if len(args) != 1 {
			return fmt.Errorf("usage: ffridge import <url>")
		}
		return application.ImportRecipe(ctx, args[0])

	case "chat":
		if len(args) == 0 {
			return fmt.Errorf("usage: ffridge chat <message>")
		}
		return application.Chat(ctx, strings.Join(args, " "))

	case "tips":
		if len(args) != 1 {
			return fmt.Errorf("usage: ffridge tips <ingredient>")
		}
		return application.StorageTips(ctx, args[0])

	case "subs":
		if len(args) != 1 {
			return fmt.Errorf("usage: ffridge subs <ingredient>")
		}
		return application.Substitutions(ctx, args[0])

	case "settings":
		switch len(args) {
		case 0:
			return application.ShowSettings()
		case 1:
			if args[0] == "reset" {
				return application.ResetSettings()
			}
		case 2:
			return application.SetSetting(args[0], args[1])
		}
		return fmt.Errorf("usage: ffridge settings [reset | <key> <value>]")

	case "login":
		loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
		name := loginCmd.String("name", "", "Display name")
		email := loginCmd.String("email", "", "Email address")
		loginCmd.Parse(args)
		if *name == "" || *email == "" {
			return fmt.Errorf("usage: ffridge login -name <name> -email <email>")
		}
		return application.Login(*name, *email)

	case "logout":
		return application.Logout()

	case "usage":
		usageCmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := usageCmd.Int("days", 30, "Report window in days")
		usageCmd.Parse(args)
		return application.ShowUsage(ctx, *days)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
		return nil
	}
}

func printUsage() {
	fmt.Println("Usage: ffridge <command> [arguments]")
	fmt.Println()
	fmt.Println("Fridge:")
	fmt.Println("  add -name <name> [-quantity N] [-unit U] [-category C] [-expiry YYYY-MM-DD]")
	fmt.Println("  list")
	fmt.Println("  expiring [-days N] [-today]")
	fmt.Println("  delete-expired")
	fmt.Println()
	fmt.Println("Recipes:")
	fmt.Println("  recipe [ingredient...]   Generate a recipe (defaults to whole fridge)")
	fmt.Println("  recipes                  List saved recipes")
	fmt.Println("  import <url>             Clip a recipe from the web")
	fmt.Println()
	fmt.Println("Assistant:")
	fmt.Println("  chat <message>")
	fmt.Println("  tips <ingredient>")
	fmt.Println("  subs <ingredient>")
	fmt.Println()
	fmt.Println("Account:")
	fmt.Println("  login -name <name> -email <email>")
	fmt.Println("  logout")
	fmt.Println("  settings [reset | <key> <value>]")
	fmt.Println("  usage [-days N]")
}
