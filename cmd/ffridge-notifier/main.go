package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ffridge/internal/config"
	"ffridge/internal/database"
	"ffridge/internal/ingredient"
	"ffridge/internal/metrics"
	"ffridge/internal/notify"
	"ffridge/internal/user"
	"ffridge/internal/worker"

	"github.com/joho/godotenv"
)

func main() {
	interval := flag.Duration("interval", worker.DefaultInterval, "Time between expiry checks")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ingredientRepo := ingredient.NewRepository(db.SQL)

	userStore, err := user.NewStore(cfg.PrefsPath)
	if err != nil {
		log.Fatalf("Failed to initialize preferences store: %v", err)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TelegramBotToken != "" {
		notifier, err = notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram notifier: %v", err)
		}
	}

	expiryWorker := worker.NewExpiryWorker(ingredientRepo, userStore, notifier, *interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go expiryWorker.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics.GetSysHealth(cfg.DataDir))
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Expiry notifier listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
