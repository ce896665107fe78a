package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"textify/app/config"
	"textify/app/controllers"
	"textify/app/middleware"
	"textify/app/repositories"
	"textify/app/routes"
	"textify/app/services"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("textify version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: textify <command>
Commands:
  help      Display this help message.
  version   Show version information.
  serve     Run the blog API server.
`
	fmt.Println(helpText)
}

// serve loads configuration, opens the store, and runs the API server
// until interrupted.
func serve() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	opts := badger.DefaultOptions(cfg.DataDir).WithLogger(nil)
	if cfg.DataDir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		logger.Fatal("Failed to open Badger DB", zap.Error(err))
	}
	defer db.Close()

	blogRepo := repositories.NewBadgerBlogRepository(db, cfg.PostTTL)
	blogService := services.NewBlogService(blogRepo)

	var textService *services.TextService
	if cfg.GeminiAPIKey != "" {
		textService, err = services.NewTextService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to create Gemini client", zap.Error(err))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI endpoints disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.RateWindow, cfg.RateMax)
	handler := routes.Setup(routes.Controllers{
		Blog:   controllers.NewBlogController(blogService, logger),
		Text:   controllers.NewTextController(textService, logger),
		Health: controllers.NewHealthController(),
	}, limiter, cfg.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Reclaim value-log space freed by expired posts.
	gcDone := make(chan struct{})
	go runValueLogGC(db, gcDone)

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.Addr),
			zap.Duration("post_ttl", cfg.PostTTL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")
	close(gcDone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func runValueLogGC(db *badger.DB, done <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// Run until there is nothing left to collect this round.
			for db.RunValueLogGC(0.5) == nil {
			}
		}
	}
}
