// Package explain turns a prediction into ordered human-readable
// justifications. Pure and deterministic: same inputs, same lines.
package explain

import (
	"fmt"
	"math"
	"strings"

	"github.com/sportstat/tennis-api/internal/models"
)

// Thresholds are the rule cut-offs. The defaults are carried over from
// the trained model's documented behavior rather than derived; they are
// configuration, not constants baked into call sites.
type Thresholds struct {
	RankGap        float64 // ranking places before one side has the advantage
	AgeGap         float64 // years before the age line is emitted
	HeightGap      float64 // centimetres before the height line is emitted
	CoinFlipMargin float64 // probability points around 50 treated as even
	StrongFavorite float64 // probability points above which a favorite is "strong"
}

// DefaultThresholds returns the standard rule cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RankGap:        10,
		AgeGap:         5,
		HeightGap:      5,
		CoinFlipMargin: 5,
		StrongFavorite: 70,
	}
}

// Explain produces the ordered explanation lines for a prediction.
// p1WinProb is a percentage. The ranking line and the surface and
// conclusion lines are always present; age and height lines appear only
// past their thresholds.
func Explain(p1, p2 models.PlayerProfile, fv models.FeatureVector, p1WinProb float64, surface string, th Thresholds) []string {
	lines := make([]string, 0, 5)
	p2WinProb := 100 - p1WinProb

	// Ranking, the dominant factor
	rankDiff := float64(p1.Rank - p2.Rank)
	switch {
	case rankDiff < -th.RankGap:
		lines = append(lines, fmt.Sprintf(
			"[+] Ranking Advantage: %s is ranked %.0f places above %s (#%d vs #%d). Ranking is the strongest predictor.",
			p1.Name, math.Abs(rankDiff), p2.Name, p1.Rank, p2.Rank))
	case rankDiff > th.RankGap:
		lines = append(lines, fmt.Sprintf(
			"[-] Ranking Advantage: %s is ranked %.0f places above %s (#%d vs #%d). Ranking is the strongest predictor.",
			p2.Name, math.Abs(rankDiff), p1.Name, p2.Rank, p1.Rank))
	default:
		lines = append(lines, fmt.Sprintf(
			"[=] Similar Ranking: the gap between #%d and #%d is small. A close match is expected.",
			p1.Rank, p2.Rank))
	}

	// Age, emitted only past the threshold
	ageDiff := p1.Age - p2.Age
	if math.Abs(ageDiff) > th.AgeGap {
		older, younger := p1, p2
		if ageDiff < 0 {
			older, younger = p2, p1
		}
		lines = append(lines, fmt.Sprintf(
			"[AGE] Age Difference: %s is %.1f years older than %s (%.1f vs %.1f). The younger player may have the edge.",
			older.Name, math.Abs(ageDiff), younger.Name, older.Age, younger.Age))
	}

	// Height, emitted only past the threshold
	heightDiff := p1.Height - p2.Height
	if math.Abs(heightDiff) > th.HeightGap {
		taller := p1.Name
		if heightDiff < 0 {
			taller = p2.Name
		}
		lines = append(lines, fmt.Sprintf(
			"[HT] Height Difference: %s is %.0fcm taller (%.0fcm vs %.0fcm). Height helps on serve.",
			taller, math.Abs(heightDiff), p1.Height, p2.Height))
	}

	// Surface, always emitted
	lines = append(lines, fmt.Sprintf(
		"[COURT] Surface: %s court (a minor factor).", strings.ToUpper(surface)))

	// Conclusion, always emitted
	switch {
	case math.Abs(p1WinProb-50) < th.CoinFlipMargin:
		lines = append(lines, "[*] Conclusion: near coin-flip. Either player can take this match.")
	case p1WinProb > th.StrongFavorite:
		lines = append(lines, fmt.Sprintf("[*] Conclusion: %s is a strong favorite.", p1.Name))
	case p2WinProb > th.StrongFavorite:
		lines = append(lines, fmt.Sprintf("[*] Conclusion: %s is a strong favorite.", p2.Name))
	default:
		favorite := p1.Name
		if p2WinProb > p1WinProb {
			favorite = p2.Name
		}
		lines = append(lines, fmt.Sprintf(
			"[*] Conclusion: %s is a slight favorite, but the opponent has real chances.", favorite))
	}

	return lines
}
