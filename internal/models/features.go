package models

// FeatureNames is the canonical ordered feature schema. Training records
// this list inside the model bundle and prediction verifies against it;
// the order here is a contract, not a convention.
var FeatureNames = []string{
	"p1_rank",
	"p2_rank",
	"rank_diff",
	"p1_age",
	"p2_age",
	"age_diff",
	"p1_ht",
	"p2_ht",
	"height_diff",
	"is_hard",
	"is_clay",
	"is_grass",
	"is_grand_slam",
	"is_masters",
}

// FeatureVector pairs ordered feature names with their values.
// Names and Values are index-aligned.
type FeatureVector struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Get returns the value of a named feature, or 0 if absent.
func (fv FeatureVector) Get(name string) float64 {
	for i, n := range fv.Names {
		if n == name {
			return fv.Values[i]
		}
	}
	return 0
}
