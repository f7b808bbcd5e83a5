package handlers

import (
	"context"

	"github.com/sportstat/tennis-api/internal/directory"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
	"github.com/sportstat/tennis-api/internal/worker"
)

// MockPredictionService
type MockPredictionService struct {
	PredictMatchFunc func(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error)
	LookupPlayerFunc func(ctx context.Context, name string) (models.PlayerProfile, error)
	PlayerNamesFunc  func() []string
	ReadyFunc        func() bool
}

func (m *MockPredictionService) PredictMatch(ctx context.Context, p1, p2, surface string, grandSlam, masters bool) (*models.PredictionResult, error) {
	if m.PredictMatchFunc != nil {
		return m.PredictMatchFunc(ctx, p1, p2, surface, grandSlam, masters)
	}
	return &models.PredictionResult{P1WinProb: 50, P2WinProb: 50}, nil
}

func (m *MockPredictionService) LookupPlayer(ctx context.Context, name string) (models.PlayerProfile, error) {
	if m.LookupPlayerFunc != nil {
		return m.LookupPlayerFunc(ctx, name)
	}
	return models.PlayerProfile{Name: name}, nil
}

func (m *MockPredictionService) PlayerNames() []string {
	if m.PlayerNamesFunc != nil {
		return m.PlayerNamesFunc()
	}
	return nil
}

func (m *MockPredictionService) PlayerCount() int {
	return len(m.PlayerNames())
}

func (m *MockPredictionService) Ready() bool {
	if m.ReadyFunc != nil {
		return m.ReadyFunc()
	}
	return true
}

func (m *MockPredictionService) SwapModel(*model.OutcomeModel)     {}
func (m *MockPredictionService) SwapDirectory(*directory.Snapshot) {}

// MockRetrainQueue
type MockRetrainQueue struct {
	EnqueueFunc func(job worker.Job) bool
	Jobs        []worker.Job
}

func (m *MockRetrainQueue) Enqueue(job worker.Job) bool {
	m.Jobs = append(m.Jobs, job)
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(job)
	}
	return true
}
