// Package dataset loads raw match rows from their archive and normalizes
// them into the canonical form the rest of the pipeline consumes.
package dataset

import (
	"context"
	"errors"

	"github.com/sportstat/tennis-api/internal/models"
)

// ErrNoData signals a missing or empty source batch. Callers that hold a
// cached snapshot may recover; everyone else surfaces it.
var ErrNoData = errors.New("dataset: no match data available")

// Source supplies raw match rows for a set of seasons.
type Source interface {
	Matches(ctx context.Context, years []int) ([]models.MatchRecord, error)
}
