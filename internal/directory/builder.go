package directory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/dataset"
)

// Builder produces directory snapshots from a dataset source, falling
// back to the Redis-cached snapshot when the source batch is missing,
// empty, or unparseable.
type Builder struct {
	source dataset.Source
	cache  *Cache // nil disables caching
	logger *zap.SugaredLogger
}

func NewBuilder(source dataset.Source, cache *Cache, logger *zap.Logger) *Builder {
	return &Builder{source: source, cache: cache, logger: logger.Sugar()}
}

// BuildSeason builds a fresh snapshot from the given season. On source
// failure it returns the cached snapshot when one exists; otherwise the
// load error surfaces to the caller.
func (b *Builder) BuildSeason(ctx context.Context, year int) (*Snapshot, error) {
	records, err := b.source.Matches(ctx, []int{year})
	if err != nil {
		if b.cache == nil {
			return nil, fmt.Errorf("directory build: %w", err)
		}
		b.logger.Warnw("Source load failed, trying cached snapshot", "year", year, "error", err)
		snap, cacheErr := b.cache.Load(ctx)
		if cacheErr != nil {
			return nil, fmt.Errorf("directory build: %w (cache fallback: %v)", err, cacheErr)
		}
		b.logger.Infow("Recovered directory from cache", "players", snap.Len())
		return snap, nil
	}

	snap := Build(dataset.Clean(records))
	b.logger.Infow("Built player directory", "year", year, "players", snap.Len())

	if b.cache != nil {
		if err := b.cache.Store(ctx, snap); err != nil {
			// Cache write failure is not fatal to the build
			b.logger.Warnw("Failed to cache directory snapshot", "error", err)
		}
	}
	return snap, nil
}
