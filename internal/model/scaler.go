package model

import "gonum.org/v1/gonum/stat"

// standardScaler centers each column to zero mean and unit variance,
// fitted on the training split only and reused verbatim at prediction
// time (it ships inside the model bundle).
type standardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *standardScaler) fit(X [][]float64) {
	if len(X) == 0 {
		return
	}
	d := len(X[0])
	s.Mean = make([]float64, d)
	s.Std = make([]float64, d)

	col := make([]float64, len(X))
	for j := 0; j < d; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			// Constant column (e.g. a one-hot never set in this batch)
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
}

func (s *standardScaler) transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = s.transformRow(row)
	}
	return out
}

func (s *standardScaler) transformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		if j < len(s.Mean) {
			out[j] = (v - s.Mean[j]) / s.Std[j]
		} else {
			out[j] = v
		}
	}
	return out
}
