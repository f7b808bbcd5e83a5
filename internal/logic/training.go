package logic

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/dataset"
	"github.com/sportstat/tennis-api/internal/features"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
	"github.com/sportstat/tennis-api/internal/registry"
)

// TrainingParams selects what to train and where to put the bundle.
type TrainingParams struct {
	Years      []int
	Kind       model.Kind
	BundlePath string
}

// TrainingOutcome bundles the trained model with its metrics so callers
// can swap it in or just report on it.
type TrainingOutcome struct {
	Model   *model.OutcomeModel
	Metrics *models.TrainMetrics
	Matches int
	Elapsed time.Duration
}

type trainingService struct {
	source dataset.Source
	runs   *registry.Registry // nil disables run recording
	logger *zap.SugaredLogger
}

func NewTrainingService(source dataset.Source, runs *registry.Registry, logger *zap.Logger) TrainingService {
	return &trainingService{source: source, runs: runs, logger: logger.Sugar()}
}

// RunTraining executes the offline batch pipeline: load raw rows, clean
// them, expand into the label-balanced training set, fit, persist the
// bundle, and record the run.
func (s *trainingService) RunTraining(ctx context.Context, params TrainingParams) (*TrainingOutcome, error) {
	start := time.Now()

	records, err := s.source.Matches(ctx, params.Years)
	if err != nil {
		return nil, fmt.Errorf("load training batch: %w", err)
	}
	s.logger.Infow("Loaded training batch", "rows", len(records), "years", params.Years)

	cleaned := dataset.Clean(records)
	X, y := features.BuildTrainingSet(cleaned)
	s.logger.Infow("Engineered features",
		"matches", len(cleaned), "samples", len(X), "features", len(models.FeatureNames))

	mdl, err := model.New(params.Kind)
	if err != nil {
		return nil, err
	}
	metrics, err := mdl.Train(X, y)
	if err != nil {
		return nil, fmt.Errorf("train %s: %w", params.Kind, err)
	}
	s.logger.Infow("Trained model",
		"kind", params.Kind,
		"train_accuracy", metrics.TrainAccuracy,
		"test_accuracy", metrics.TestAccuracy,
		"cv_mean", metrics.CVMean,
		"cv_std", metrics.CVStd,
	)

	if params.BundlePath != "" {
		if err := mdl.Save(params.BundlePath); err != nil {
			return nil, fmt.Errorf("save bundle: %w", err)
		}
		s.logger.Infow("Saved model bundle", "path", params.BundlePath)
	}

	if s.runs != nil {
		run := registry.Run{
			Kind:          string(params.Kind),
			TrainAccuracy: metrics.TrainAccuracy,
			TestAccuracy:  metrics.TestAccuracy,
			CVMean:        metrics.CVMean,
			CVStd:         metrics.CVStd,
			Samples:       len(X),
			BundlePath:    params.BundlePath,
		}
		if err := s.runs.RecordRun(ctx, run); err != nil {
			// Registry write failure should not discard a good model
			s.logger.Warnw("Failed to record training run", "error", err)
		}
	}

	return &TrainingOutcome{
		Model:   mdl,
		Metrics: metrics,
		Matches: len(cleaned),
		Elapsed: time.Since(start),
	}, nil
}
