package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/JustJay7/precedent/internal/auth"
	"github.com/JustJay7/precedent/internal/cache"
	"github.com/JustJay7/precedent/internal/config"
	"github.com/JustJay7/precedent/internal/database"
	"github.com/JustJay7/precedent/internal/legal"
	"github.com/JustJay7/precedent/internal/server"
	"github.com/JustJay7/precedent/internal/service"
	"github.com/JustJay7/precedent/pkg/logger"
)

func main() {
	var (
		migrate   bool
		transport string
	)
	flag.BoolVar(&migrate, "migrate", false, "Run database migrations and exit")
	flag.StringVar(&transport, "transport", "", "HTTP transport to serve with (gin or chi)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if transport != "" {
		cfg.Transport = transport
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.UsingDefaultSecret() {
		log.Warn("SECRET_KEY is not set; signing tokens with the built-in development secret")
	}

	store := openStore(cfg, log)

	if migrate {
		if store == nil {
			log.Fatal("No analysis store configured; set DATABASE_URL")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := store.Migrate(ctx); err != nil {
			log.Fatal("Failed to run migrations", "error", err)
		}
		store.Close()
		log.Info("Database migrations completed successfully")
		return
	}

	creds, err := auth.NewCredentials(cfg.AuthUsername, cfg.AuthPassword)
	if err != nil {
		log.Fatal("Failed to initialize credentials", "error", err)
	}

	svc := service.New(service.Deps{
		Tokens:       auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL),
		Credentials:  creds,
		Orchestrator: legal.NewOrchestrator(legal.WithLogger(log)),
		Cache:        cache.NewCache(cfg.CacheSize, cfg.CacheTTL),
		Store:        store,
		Logger:       log,
		MaxInfoWords: cfg.MaxInfoWords,
		StoreTimeout: cfg.StoreTimeout,
	})

	srv, err := server.New(cfg, svc, store, log)
	if err != nil {
		log.Fatal("Failed to initialize server", "error", err)
	}

	log.Info("Starting Precedent",
		"host", cfg.Host,
		"port", cfg.Port,
		"transport", cfg.Transport,
	)

	if err := srv.Run(); err != nil {
		log.Fatal("Server failed to start", "error", err)
	}
}

// openStore connects the analysis log. The service keeps running without it.
func openStore(cfg *config.Config, log *logger.Logger) database.Store {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()

	store, err := database.Open(ctx, cfg.DatabaseURL)
	switch {
	case errors.Is(err, database.ErrStoreDisabled):
		log.Info("Analysis store disabled")
		return nil
	case err != nil:
		log.Warn("Analysis store unavailable; continuing without persistence",
			"backend", database.Backend(cfg.DatabaseURL),
			"error", err,
		)
		return nil
	}

	log.Info("Analysis store connected", "backend", database.Backend(cfg.DatabaseURL))
	return store
}
