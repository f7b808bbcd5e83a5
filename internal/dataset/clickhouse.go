package dataset

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/models"
)

// ClickHouseSource pulls match rows from the tennis.matches table kept
// up to date by the acquisition collaborator.
type ClickHouseSource struct {
	ch     driver.Conn
	logger *zap.SugaredLogger
}

func NewClickHouseSource(ch driver.Conn, logger *zap.Logger) *ClickHouseSource {
	return &ClickHouseSource{ch: ch, logger: logger.Sugar()}
}

func (s *ClickHouseSource) Matches(ctx context.Context, years []int) ([]models.MatchRecord, error) {
	query := `
		SELECT
			winner_name, loser_name,
			winner_rank, loser_rank,
			winner_age, loser_age,
			winner_ht, loser_ht,
			winner_hand, loser_hand,
			surface, tourney_level, round, tourney_date
		FROM tennis.matches
	`
	args := []interface{}{}
	if len(years) > 0 {
		query += ` WHERE toYear(parseDateTimeBestEffortOrNull(tourney_date)) IN (?)`
		args = append(args, years)
	}
	query += ` ORDER BY tourney_date, winner_name`

	rows, err := s.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var records []models.MatchRecord
	for rows.Next() {
		var (
			rec          models.MatchRecord
			wRank, lRank *int32
			wAge, lAge   *float64
			wHt, lHt     *float64
		)
		if err := rows.Scan(
			&rec.WinnerName, &rec.LoserName,
			&wRank, &lRank,
			&wAge, &lAge,
			&wHt, &lHt,
			&rec.WinnerHand, &rec.LoserHand,
			&rec.Surface, &rec.TourneyLevel, &rec.Round, &rec.TourneyDate,
		); err != nil {
			s.logger.Warnw("Skipping unscannable match row", "error", err)
			continue
		}
		if wRank != nil {
			n := int(*wRank)
			rec.WinnerRank = &n
		}
		if lRank != nil {
			n := int(*lRank)
			rec.LoserRank = &n
		}
		rec.WinnerAge, rec.LoserAge = wAge, lAge
		rec.WinnerHeight, rec.LoserHeight = wHt, lHt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: tennis.matches returned no rows", ErrNoData)
	}
	return records, nil
}
