package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-api/config"
	"github.com/Dosada05/tournament-api/db"
	"github.com/Dosada05/tournament-api/handlers"
	"github.com/Dosada05/tournament-api/realtime"
	"github.com/Dosada05/tournament-api/repositories"
	api "github.com/Dosada05/tournament-api/routes"
	"github.com/Dosada05/tournament-api/services"
	"github.com/Dosada05/tournament-api/storage"
)

// @title Tournament API
// @version 1.0
// @description Турниры, игроки, матчи, счёт и таблицы лидеров.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort), slog.String("db_driver", cfg.DatabaseDriver), slog.String("storage", cfg.StorageDriver))

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	version, err := db.Migrate(dbConn)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("database migrated", slog.Uint64("version", uint64(version)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uploader, localDir, err := newUploader(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("file uploader initialized", slog.String("driver", cfg.StorageDriver))

	wsHub := realtime.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	userRepo := repositories.NewUserRepository(dbConn)
	tournamentRepo := repositories.NewTournamentRepository(dbConn)
	playerRepo := repositories.NewPlayerRepository(dbConn)
	matchRepo := repositories.NewMatchRepository(dbConn)
	tokenRepo := repositories.NewTokenRepository(dbConn)
	logger.Info("Repositories initialized")

	authService := services.NewAuthService(userRepo, tokenRepo, uploader)
	profileService := services.NewProfileService(userRepo, tournamentRepo, playerRepo, matchRepo, uploader, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, playerRepo, matchRepo, userRepo, uploader, logger)
	playerService := services.NewPlayerService(dbConn, tournamentRepo, playerRepo, matchRepo, wsHub, logger)
	matchService := services.NewMatchService(dbConn, tournamentRepo, playerRepo, matchRepo, wsHub, logger)
	logger.Info("Services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Deps{
		Logger:          logger,
		JWTSecret:       []byte(cfg.JWTSecretKey),
		Tokens:          authService,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		LocalStorageDir: localDir,
		Auth:            handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.JWTTTL),
		Profile:         handlers.NewProfileHandler(profileService),
		Tournament:      handlers.NewTournamentHandler(tournamentService),
		Player:          handlers.NewPlayerHandler(playerService),
		Match:           handlers.NewMatchHandler(matchService),
		WebSocket:       handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger),
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}

// newUploader выбирает хранилище аватаров; для local также возвращает каталог для /storage.
func newUploader(ctx context.Context, cfg *config.Config) (storage.FileUploader, string, error) {
	switch cfg.StorageDriver {
	case config.StorageR2:
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		return uploader, "", nil
	default:
		uploader, err := storage.NewLocalUploader(cfg.LocalStorageDir, cfg.AppURL+"/storage")
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize local uploader: %w", err)
		}
		return uploader, cfg.LocalStorageDir, nil
	}
}
