package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/sportstat/tennis-api/internal/models"
)

// Imputation fallbacks for batches where an attribute column is entirely
// empty and no median exists.
const (
	defaultAge    = 25.0
	defaultHeight = 180.0
)

// Clean normalizes a raw batch into CleanedMatches. Missing ranks get the
// unranked sentinel, missing ages and heights get the median of their own
// column within this batch, missing hands get "U". Malformed dates are
// zeroed, not dropped; no row is dropped for missing numeric fields.
func Clean(records []models.MatchRecord) []models.CleanedMatch {
	winnerAgeMed := columnMedian(records, func(r models.MatchRecord) *float64 { return r.WinnerAge }, defaultAge)
	loserAgeMed := columnMedian(records, func(r models.MatchRecord) *float64 { return r.LoserAge }, defaultAge)
	winnerHtMed := columnMedian(records, func(r models.MatchRecord) *float64 { return r.WinnerHeight }, defaultHeight)
	loserHtMed := columnMedian(records, func(r models.MatchRecord) *float64 { return r.LoserHeight }, defaultHeight)

	cleaned := make([]models.CleanedMatch, 0, len(records))
	for _, r := range records {
		cleaned = append(cleaned, models.CleanedMatch{
			WinnerName:   r.WinnerName,
			LoserName:    r.LoserName,
			WinnerRank:   rankOrSentinel(r.WinnerRank),
			LoserRank:    rankOrSentinel(r.LoserRank),
			WinnerAge:    valueOr(r.WinnerAge, winnerAgeMed),
			LoserAge:     valueOr(r.LoserAge, loserAgeMed),
			WinnerHeight: valueOr(r.WinnerHeight, winnerHtMed),
			LoserHeight:  valueOr(r.LoserHeight, loserHtMed),
			WinnerHand:   handOrUnknown(r.WinnerHand),
			LoserHand:    handOrUnknown(r.LoserHand),
			Surface:      surfaceOrUnknown(r.Surface),
			TourneyLevel: strings.TrimSpace(r.TourneyLevel),
			Round:        strings.TrimSpace(r.Round),
			Date:         parseTourneyDate(r.TourneyDate),
		})
	}
	return cleaned
}

func rankOrSentinel(rank *int) int {
	if rank == nil {
		return models.UnrankedSentinel
	}
	return *rank
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func handOrUnknown(hand string) string {
	hand = strings.TrimSpace(hand)
	if hand == "" {
		return models.UnknownHand
	}
	return hand
}

func surfaceOrUnknown(surface string) string {
	surface = strings.TrimSpace(surface)
	if surface == "" {
		return "Unknown"
	}
	return surface
}

// columnMedian computes the median over the present values of one column
// in the current batch. Imputed values shift between batches; there is
// no global constant.
func columnMedian(records []models.MatchRecord, field func(models.MatchRecord) *float64, fallback float64) float64 {
	vals := make([]float64, 0, len(records))
	for _, r := range records {
		if v := field(r); v != nil {
			vals = append(vals, *v)
		}
	}
	if len(vals) == 0 {
		return fallback
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

func parseTourneyDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
