// Package registry records training runs in Postgres so deployments can
// audit which bundle came from which run.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgPool is the slice of pgxpool.Pool the registry needs.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Run is one recorded training run.
type Run struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	TrainAccuracy float64   `json:"train_accuracy"`
	TestAccuracy  float64   `json:"test_accuracy"`
	CVMean        float64   `json:"cv_mean"`
	CVStd         float64   `json:"cv_std"`
	Samples       int       `json:"samples"`
	BundlePath    string    `json:"bundle_path"`
	CreatedAt     time.Time `json:"created_at"`
}

type Registry struct {
	pg PgPool
}

func New(pg PgPool) *Registry {
	return &Registry{pg: pg}
}

// EnsureSchema creates the training_runs table if it does not exist.
func (r *Registry) EnsureSchema(ctx context.Context) error {
	_, err := r.pg.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS training_runs (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			train_accuracy DOUBLE PRECISION NOT NULL,
			test_accuracy DOUBLE PRECISION NOT NULL,
			cv_mean DOUBLE PRECISION NOT NULL,
			cv_std DOUBLE PRECISION NOT NULL,
			samples BIGINT NOT NULL,
			bundle_path TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure training_runs: %w", err)
	}
	return nil
}

// RecordRun inserts one run, assigning its id and timestamp.
func (r *Registry) RecordRun(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	_, err := r.pg.Exec(ctx, `
		INSERT INTO training_runs
			(id, kind, train_accuracy, test_accuracy, cv_mean, cv_std, samples, bundle_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, run.ID, run.Kind, run.TrainAccuracy, run.TestAccuracy, run.CVMean, run.CVStd, run.Samples, run.BundlePath)
	if err != nil {
		return fmt.Errorf("insert training run: %w", err)
	}
	return nil
}

// LatestRun returns the most recent run, or pgx.ErrNoRows when none.
func (r *Registry) LatestRun(ctx context.Context) (*Run, error) {
	var run Run
	err := r.pg.QueryRow(ctx, `
		SELECT id, kind, train_accuracy, test_accuracy, cv_mean, cv_std, samples, bundle_path, created_at
		FROM training_runs
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Kind, &run.TrainAccuracy, &run.TestAccuracy,
		&run.CVMean, &run.CVStd, &run.Samples, &run.BundlePath, &run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("latest training run: %w", err)
	}
	return &run, nil
}
