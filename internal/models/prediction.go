package models

// PredictionResult is the structured output handed to API/UI consumers.
// Win probabilities are percentages and sum to 100.
type PredictionResult struct {
	Player1         PlayerProfile `json:"player1"`
	Player2         PlayerProfile `json:"player2"`
	P1WinProb       float64       `json:"p1_win_prob"`
	P2WinProb       float64       `json:"p2_win_prob"`
	PredictedWinner string        `json:"predicted_winner"`
	Surface         string        `json:"surface"`
	TournamentType  string        `json:"tournament_type"`
	Explanation     []string      `json:"explanation"`
}

// TrainMetrics summarizes one training run.
type TrainMetrics struct {
	Kind          string             `json:"kind"`
	TrainAccuracy float64            `json:"train_accuracy"`
	TestAccuracy  float64            `json:"test_accuracy"`
	CVMean        float64            `json:"cv_mean"`
	CVStd         float64            `json:"cv_std"`
	TrainSize     int                `json:"train_size"`
	TestSize      int                `json:"test_size"`
	Importances   map[string]float64 `json:"feature_importance,omitempty"`
}
