// Package worker runs model retraining off the request path. Training
// is an exclusive batch phase: one goroutine drains the job queue, fits
// a fresh bundle, and atomically swaps it into the prediction service,
// so readers never observe a half-trained model.
package worker

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/model"
)

var (
	retrainsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_retrains_started_total",
		Help: "Total number of retrain jobs started",
	})

	retrainsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_retrains_failed_total",
		Help: "Total number of retrain jobs that failed",
	})

	retrainDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tennis_retrain_duration_seconds",
		Help:    "Duration of retrain jobs",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	retrainsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tennis_retrains_dropped_total",
		Help: "Retrain requests dropped because one was already queued",
	})
)

// Job describes one retrain request.
type Job struct {
	Params logic.TrainingParams
}

// Retrainer serializes retrain jobs behind a small queue.
type Retrainer struct {
	trainer logic.TrainingService
	onSwap  func(*model.OutcomeModel)
	jobs    chan Job
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	logger  *zap.SugaredLogger
}

// NewRetrainer wires the training service to the swap callback that
// publishes a freshly trained model.
func NewRetrainer(trainer logic.TrainingService, onSwap func(*model.OutcomeModel), logger *zap.Logger) *Retrainer {
	return &Retrainer{
		trainer: trainer,
		onSwap:  onSwap,
		jobs:    make(chan Job, 1),
		logger:  logger.Sugar(),
	}
}

// Start launches the single worker goroutine.
func (r *Retrainer) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go r.run(ctx)
	r.logger.Infow("Retrain worker started")
}

// Stop cancels the worker and waits for a running job to finish.
func (r *Retrainer) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Enqueue schedules a retrain. Returns false when one is already
// pending; retraining is exclusive, queueing more achieves nothing.
func (r *Retrainer) Enqueue(job Job) bool {
	select {
	case r.jobs <- job:
		return true
	default:
		retrainsDropped.Inc()
		return false
	}
}

func (r *Retrainer) run(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-r.jobs:
			r.process(ctx, job)
		}
	}
}

func (r *Retrainer) process(ctx context.Context, job Job) {
	retrainsStarted.Inc()
	timer := prometheus.NewTimer(retrainDuration)
	defer timer.ObserveDuration()

	outcome, err := r.trainer.RunTraining(ctx, job.Params)
	if err != nil {
		retrainsFailed.Inc()
		r.logger.Errorw("Retrain failed", "kind", job.Params.Kind, "error", err)
		return
	}

	r.onSwap(outcome.Model)
	r.logger.Infow("Retrain complete, model swapped",
		"kind", job.Params.Kind,
		"matches", outcome.Matches,
		"test_accuracy", outcome.Metrics.TestAccuracy,
		"elapsed", outcome.Elapsed,
	)
}
