package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/research-editing-site/internal/api"
	"github.com/research-editing-site/internal/cms"
	"github.com/research-editing-site/internal/config"
	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/database"
	"github.com/research-editing-site/internal/repository"
	"github.com/research-editing-site/internal/service"
	"github.com/research-editing-site/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	repos := repository.New(db)
	services := service.NewServices(repos, log)

	// Public blog reads come from one of two interchangeable stores,
	// chosen once at startup. The admin CMS always writes to the database.
	var source content.Source = repos.Post
	if cfg.Content.Source == config.SourceCMS {
		source = cms.NewClient(cfg.Content.CMSBaseURL, cfg.Content.CMSToken)
	}
	log.Info().Str("content_source", cfg.Content.Source).Msg("Content source selected")

	contentRepo := content.NewRepository(source, log)

	router := api.NewRouter(services, contentRepo, cfg, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
