package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/dataset"
	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
	"github.com/sportstat/tennis-api/internal/registry"
)

func main() {
	var (
		dataDir = flag.String("data-dir", "data", "directory with atp_matches_YYYY.csv files")
		years   = flag.String("years", "", "comma-separated seasons to train on (default: all files)")
		kind    = flag.String("kind", "random_forest", "classifier kind: random_forest, gradient_boosting or logistic")
		out     = flag.String("out", "tennis_model.json", "path for the trained bundle")
		compare = flag.Bool("compare", false, "train all three kinds and keep the best by test accuracy")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	yearList, err := parseYears(*years)
	if err != nil {
		sugar.Fatalw("Invalid -years", "error", err)
	}

	ctx := context.Background()

	// Record runs when a registry database is configured
	var runs *registry.Registry
	if pgURL := os.Getenv("POSTGRES_URL"); pgURL != "" {
		pool, err := pgxpool.New(ctx, pgURL)
		if err != nil {
			sugar.Fatalw("Failed to connect to Postgres", "error", err)
		}
		defer pool.Close()
		runs = registry.New(pool)
		if err := runs.EnsureSchema(ctx); err != nil {
			sugar.Fatalw("Failed to ensure registry schema", "error", err)
		}
	}

	source := dataset.NewCSVSource(*dataDir, logger)
	trainer := logic.NewTrainingService(source, runs, logger)

	kinds := []model.Kind{model.Kind(*kind)}
	if *compare {
		kinds = []model.Kind{model.KindRandomForest, model.KindGradientBoosting, model.KindLogistic}
	}

	var best *logic.TrainingOutcome
	for _, k := range kinds {
		params := logic.TrainingParams{Years: yearList, Kind: k}
		if !*compare {
			params.BundlePath = *out
		}
		outcome, err := trainer.RunTraining(ctx, params)
		if err != nil {
			sugar.Fatalw("Training failed", "kind", k, "error", err)
		}
		printMetrics(outcome.Metrics)
		if best == nil || outcome.Metrics.TestAccuracy > best.Metrics.TestAccuracy {
			best = outcome
		}
	}

	if *compare {
		fmt.Printf("\nBest by test accuracy: %s (%.2f%%)\n",
			best.Metrics.Kind, best.Metrics.TestAccuracy*100)
		if err := best.Model.Save(*out); err != nil {
			sugar.Fatalw("Failed to save bundle", "error", err)
		}
	}
	fmt.Printf("Saved bundle to %s\n", *out)
}

func parseYears(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var years []int
	for _, part := range strings.Split(s, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad year %q: %w", part, err)
		}
		years = append(years, y)
	}
	return years, nil
}

func printMetrics(m *models.TrainMetrics) {
	fmt.Printf("\n=== %s ===\n", m.Kind)
	fmt.Printf("Train accuracy: %.2f%% (%d samples)\n", m.TrainAccuracy*100, m.TrainSize)
	fmt.Printf("Test accuracy:  %.2f%% (%d samples)\n", m.TestAccuracy*100, m.TestSize)
	fmt.Printf("5-fold CV:      %.2f%% +/- %.2f%%\n", m.CVMean*100, m.CVStd*100)

	if len(m.Importances) > 0 {
		type pair struct {
			name  string
			value float64
		}
		pairs := make([]pair, 0, len(m.Importances))
		for name, v := range m.Importances {
			pairs = append(pairs, pair{name, v})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].value > pairs[j].value })
		fmt.Println("Top features:")
		for i, p := range pairs {
			if i == 5 {
				break
			}
			fmt.Printf("  %-14s %.4f\n", p.name, p.value)
		}
	}
}
