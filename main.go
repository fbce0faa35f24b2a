package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"cinemate/cmd"
	"cinemate/internal/data/cache"
	"cinemate/internal/data/repository"
	"cinemate/internal/data/tmdb"
	"cinemate/internal/usecase"
	"cinemate/internal/wire"
	"cinemate/pkg/database"
	"cinemate/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, movie metadata will not be cached", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	repos := repository.NewRepository(db, config.Showtime.FromSchedules, logger)
	movies := newMovieProvider(config, repos, rdb, logger)

	app, err := wire.Wiring(repos, movies, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.Service.Booking.Run(ctx)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}

// newMovieProvider prefers TMDB when an API key is configured and falls back
// to the local catalogue. Redis, when reachable, caches either one.
func newMovieProvider(config *utils.Config, repos *repository.Repository, rdb *redis.Client, logger *zap.Logger) usecase.MovieCatalog {
	var movies usecase.MovieCatalog = repos.Movie
	source := "catalogue"
	if config.TMDB.APIKey != "" {
		movies = tmdb.NewClient(config.TMDB, nil, logger)
		source = "tmdb"
	}

	if rdb != nil {
		movies = cache.NewMovieCache(movies, cache.NewRedisStore(rdb), config.Redis.MetadataTTL, logger)
	}

	logger.Info("Movie metadata provider selected",
		zap.String("source", source),
		zap.Bool("cached", rdb != nil),
	)
	return movies
}
