package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/cdn"
	"github.com/easysocial/easysocial-server/internal/config"
	"github.com/easysocial/easysocial-server/internal/handlers"
	"github.com/easysocial/easysocial-server/internal/logger"
	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/oauth"
	"github.com/easysocial/easysocial-server/internal/oauth/github"
	"github.com/easysocial/easysocial-server/internal/oauth/google"
	"github.com/easysocial/easysocial-server/internal/oauth/microsoft"
	"github.com/easysocial/easysocial-server/internal/repository"
	"github.com/easysocial/easysocial-server/internal/repository/memory"
	"github.com/easysocial/easysocial-server/internal/repository/postgres"
	redis_repo "github.com/easysocial/easysocial-server/internal/repository/redis"
	"github.com/easysocial/easysocial-server/internal/router"
	"github.com/easysocial/easysocial-server/internal/server"
	"github.com/easysocial/easysocial-server/internal/service"
)

// The schema file ships next to the binary so operators can inspect
// and apply it by hand.
const schemaFile = "migrations/schema.sql"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.App.LogLevel, cfg.App.Env)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open postgres pool")
	}
	defer pool.Close()

	if err := bootstrapSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap database schema")
	}

	stateRepo, closeState := newStateRepository(cfg)
	defer closeState()

	if cfg.Minio.Endpoint != "" {
		minioClient, err := cdn.New(cfg.Minio)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to object storage")
		}
		if err := cdn.EnsureBucket(ctx, minioClient, cfg.Minio.Bucket); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure media bucket")
		}
	}

	userRepo := postgres.NewPostgresUserRepository(pool)
	profileRepo := postgres.NewPostgresProfileRepository(pool)

	adapters := map[models.Provider]oauth.Adapter{
		models.ProviderGitHub: github.New(
			cfg.OAuth[models.ProviderGitHub].ClientID,
			cfg.OAuth[models.ProviderGitHub].ClientSecret,
			cfg.RedirectURI(models.ProviderGitHub),
		),
		models.ProviderGoogle: google.New(
			cfg.OAuth[models.ProviderGoogle].ClientID,
			cfg.OAuth[models.ProviderGoogle].ClientSecret,
			cfg.RedirectURI(models.ProviderGoogle),
		),
		models.ProviderMicrosoft: microsoft.New(
			cfg.OAuth[models.ProviderMicrosoft].ClientID,
			cfg.OAuth[models.ProviderMicrosoft].ClientSecret,
			cfg.RedirectURI(models.ProviderMicrosoft),
		),
	}

	tokenService := service.NewTokenService(cfg.JWT)
	userService := service.NewUserService(userRepo)
	oauthService := service.NewOAuthService(stateRepo, adapters, userService, tokenService)
	profileService := service.NewProfileService(profileRepo)

	app := server.New()
	router.SetupOAuthRoutes(app, handlers.NewOAuthHandler(oauthService))
	router.SetupProfileRoutes(app, handlers.NewProfileHandler(profileService), cfg.JWT.Secret)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Server starting")
		if err := app.Start(":" + cfg.App.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped gracefully.")
}

// bootstrapSchema applies the idempotent schema file so a fresh
// database is usable without a separate migration step.
func bootstrapSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, string(schema))
	return err
}

// newStateRepository prefers Redis when an address is configured and
// falls back to the in-process store otherwise.
func newStateRepository(cfg *config.Config) (repository.StateRepository, func()) {
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info().Str("address", cfg.Redis.Address).Msg("Using redis state store")
		return redis_repo.NewRedisStateRepository(client, cfg.State.TTL), func() { _ = client.Close() }
	}

	log.Info().Msg("REDIS_ADDRESS not set, using in-memory state store")
	repo := memory.NewMemoryStateRepository(cfg.State.TTL, cfg.State.CheckInterval)
	return repo, repo.Close
}
