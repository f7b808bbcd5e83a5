package logic

import (
	"context"

	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
)

// PredictionService answers head-to-head questions against the current
// directory snapshot and outcome model.
type PredictionService interface {
	PredictMatch(ctx context.Context, p1Name, p2Name, surface string, grandSlam, masters bool) (*models.PredictionResult, error)
	LookupPlayer(ctx context.Context, name string) (models.PlayerProfile, error)
	PlayerNames() []string
	PlayerCount() int
	Ready() bool
	SwapModel(m *model.OutcomeModel)
	SwapDirectory(s *directory.Snapshot)
}

// TrainingService runs the offline batch pipeline: load, clean,
// engineer, fit, persist.
type TrainingService interface {
	RunTraining(ctx context.Context, params TrainingParams) (*TrainingOutcome, error)
}
