package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sportstat/tennis-api/internal/config"
	"github.com/sportstat/tennis-api/internal/dataset"
	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/explain"
	"github.com/sportstat/tennis-api/internal/handlers"
	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/registry"
	"github.com/sportstat/tennis-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional Redis, used for the directory snapshot fallback
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	// Optional Postgres, used for the training-run registry
	var runs *registry.Registry
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			sugar.Fatalw("Failed to connect to Postgres", "error", err)
		}
		defer pool.Close()
		runs = registry.New(pool)
		if err := runs.EnsureSchema(ctx); err != nil {
			sugar.Fatalw("Failed to ensure registry schema", "error", err)
		}
	}

	source, err := buildSource(cfg, logger)
	if err != nil {
		sugar.Fatalw("Failed to build dataset source", "error", err)
	}

	thresholds := explain.Thresholds{
		RankGap:        cfg.RankGap,
		AgeGap:         cfg.AgeGap,
		HeightGap:      cfg.HeightGap,
		CoinFlipMargin: cfg.CoinFlipMargin,
		StrongFavorite: cfg.StrongFavorite,
	}

	prediction := logic.NewPredictionService(nil, nil, thresholds, logger)
	trainer := logic.NewTrainingService(source, runs, logger)

	// Warm up the model and the player directory concurrently. A missing
	// bundle is tolerated: the service comes up not-ready and an admin
	// retrain fills the gap.
	var cache *directory.Cache
	if redisClient != nil {
		cache = directory.NewCache(redisClient)
	}
	builder := directory.NewBuilder(source, cache, logger)

	g, warmCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mdl, err := model.Load(cfg.ModelPath)
		if err != nil {
			sugar.Warnw("No model bundle loaded", "path", cfg.ModelPath, "error", err)
			return nil
		}
		prediction.SwapModel(mdl)
		sugar.Infow("Loaded model bundle", "path", cfg.ModelPath, "kind", mdl.Kind())
		return nil
	})
	g.Go(func() error {
		snap, err := builder.BuildSeason(warmCtx, cfg.DirectoryYear)
		if err != nil {
			return fmt.Errorf("build directory: %w", err)
		}
		prediction.SwapDirectory(snap)
		return nil
	})
	if err := g.Wait(); err != nil {
		sugar.Fatalw("Warmup failed", "error", err)
	}

	retrainer := worker.NewRetrainer(trainer, prediction.SwapModel, logger)
	retrainer.Start(ctx)
	defer retrainer.Stop()

	h := handlers.New(handlers.Config{
		Prediction: prediction,
		Retrainer:  retrainer,
		Redis:      redisClient,
		Logger:     logger,
		ModelPath:  cfg.ModelPath,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Shutdown error", "error", err)
	}
}

// buildSource picks ClickHouse when configured, CSV files otherwise.
func buildSource(cfg *config.Config, logger *zap.Logger) (dataset.Source, error) {
	if cfg.ClickHouseURL != "" {
		opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			return nil, fmt.Errorf("parse CLICKHOUSE_URL: %w", err)
		}
		conn, err := clickhouse.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		return dataset.NewClickHouseSource(conn, logger), nil
	}
	return dataset.NewCSVSource(cfg.DataDir, logger), nil
}
