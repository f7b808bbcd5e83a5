// Package features derives the model covariates from cleaned matches.
//
// Two modes share one schema: batch mode expands every match into a
// label-balanced pair of rows for training, single-pair mode builds the
// one row asked about at prediction time. Both emit values in the exact
// order of models.FeatureNames; the model records that order at training
// time and rejects anything else.
package features

import (
	"strings"

	"github.com/sportstat/tennis-api/internal/models"
)

// Context is the match context shared by both emitted training rows --
// the court does not depend on who is "player 1".
type Context struct {
	Surface   string
	GrandSlam bool
	Masters   bool
}

// ContextFromMatch derives the one-hot context from a cleaned match row.
func ContextFromMatch(m models.CleanedMatch) Context {
	return Context{
		Surface:   m.Surface,
		GrandSlam: m.TourneyLevel == "G",
		Masters:   m.TourneyLevel == "M",
	}
}

// BuildTrainingSet expands each match into exactly two feature vectors:
// winner as player 1 (label 1) and loser as player 1 (label 0). The
// difference features are negated between the pair and the absolute
// features swapped, so the resulting dataset is balanced 50/50 by
// construction and carries no player-order bias.
func BuildTrainingSet(matches []models.CleanedMatch) ([]models.FeatureVector, []int) {
	vectors := make([]models.FeatureVector, 0, 2*len(matches))
	labels := make([]int, 0, 2*len(matches))

	for _, m := range matches {
		ctx := ContextFromMatch(m)
		winner := side{rank: m.WinnerRank, age: m.WinnerAge, height: m.WinnerHeight}
		loser := side{rank: m.LoserRank, age: m.LoserAge, height: m.LoserHeight}

		vectors = append(vectors, vector(winner, loser, ctx))
		labels = append(labels, 1)
		vectors = append(vectors, vector(loser, winner, ctx))
		labels = append(labels, 0)
	}

	return vectors, labels
}

// BuildPair builds the single inference vector with player 1 fixed to
// the first named player. Asymmetric on purpose: the question is "what
// is p1's win probability against p2", in that order.
func BuildPair(p1, p2 models.PlayerProfile, ctx Context) models.FeatureVector {
	a := side{rank: p1.Rank, age: p1.Age, height: p1.Height}
	b := side{rank: p2.Rank, age: p2.Age, height: p2.Height}
	return vector(a, b, ctx)
}

type side struct {
	rank   int
	age    float64
	height float64
}

func vector(p1, p2 side, ctx Context) models.FeatureVector {
	surface := strings.ToLower(strings.TrimSpace(ctx.Surface))
	return models.FeatureVector{
		Names: models.FeatureNames,
		Values: []float64{
			float64(p1.rank),
			float64(p2.rank),
			float64(p1.rank - p2.rank),
			p1.age,
			p2.age,
			p1.age - p2.age,
			p1.height,
			p2.height,
			p1.height - p2.height,
			oneHot(surface == "hard"),
			oneHot(surface == "clay"),
			oneHot(surface == "grass"),
			oneHot(ctx.GrandSlam),
			oneHot(ctx.Masters),
		},
	}
}

func oneHot(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
