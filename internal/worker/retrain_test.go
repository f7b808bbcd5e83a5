package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/model"
	"github.com/sportstat/tennis-api/internal/models"
)

// mockTrainer implements logic.TrainingService.
type mockTrainer struct {
	outcome *logic.TrainingOutcome
	err     error
	block   chan struct{} // when non-nil, RunTraining waits on it
	calls   chan logic.TrainingParams
}

func (m *mockTrainer) RunTraining(ctx context.Context, params logic.TrainingParams) (*logic.TrainingOutcome, error) {
	if m.calls != nil {
		m.calls <- params
	}
	if m.block != nil {
		<-m.block
	}
	return m.outcome, m.err
}

func trainedOutcome(t *testing.T) *logic.TrainingOutcome {
	t.Helper()
	m, err := model.New(model.KindLogistic)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return &logic.TrainingOutcome{
		Model:   m,
		Metrics: &models.TrainMetrics{Kind: string(model.KindLogistic), TestAccuracy: 0.68},
	}
}

func TestRetrainerSwapsOnSuccess(t *testing.T) {
	swapped := make(chan *model.OutcomeModel, 1)
	trainer := &mockTrainer{outcome: trainedOutcome(t)}

	r := NewRetrainer(trainer, func(m *model.OutcomeModel) { swapped <- m }, zap.NewNop())
	r.Start(context.Background())
	defer r.Stop()

	if !r.Enqueue(Job{Params: logic.TrainingParams{Kind: model.KindLogistic}}) {
		t.Fatal("enqueue refused")
	}

	select {
	case m := <-swapped:
		if m == nil {
			t.Error("swap callback got nil model")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("swap callback never fired")
	}
}

func TestRetrainerNoSwapOnFailure(t *testing.T) {
	swapped := make(chan *model.OutcomeModel, 1)
	calls := make(chan logic.TrainingParams, 1)
	trainer := &mockTrainer{err: errors.New("boom"), calls: calls}

	r := NewRetrainer(trainer, func(m *model.OutcomeModel) { swapped <- m }, zap.NewNop())
	r.Start(context.Background())
	defer r.Stop()

	r.Enqueue(Job{Params: logic.TrainingParams{Kind: model.KindGradientBoosting}})

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("trainer never called")
	}

	select {
	case <-swapped:
		t.Fatal("swap fired despite training failure")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEnqueueShedsWhenBusy(t *testing.T) {
	block := make(chan struct{})
	calls := make(chan logic.TrainingParams, 2)
	trainer := &mockTrainer{outcome: trainedOutcome(t), block: block, calls: calls}

	r := NewRetrainer(trainer, func(*model.OutcomeModel) {}, zap.NewNop())
	r.Start(context.Background())
	defer func() {
		close(block)
		r.Stop()
	}()

	// First job starts processing, second sits in the buffer, third
	// must be shed.
	if !r.Enqueue(Job{}) {
		t.Fatal("first enqueue refused")
	}
	<-calls // worker picked up the first job
	if !r.Enqueue(Job{}) {
		t.Fatal("second enqueue refused with empty buffer")
	}
	if r.Enqueue(Job{}) {
		t.Error("third enqueue accepted with a full buffer")
	}
}
