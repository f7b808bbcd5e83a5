package models

// PredictRequest is the body of POST /api/v1/predict.
type PredictRequest struct {
	Player1   string `json:"player1" validate:"required,min=2"`
	Player2   string `json:"player2" validate:"required,min=2"`
	Surface   string `json:"surface" validate:"required,oneof=hard clay grass"`
	GrandSlam bool   `json:"grand_slam"`
	Masters   bool   `json:"masters"`
}

// RetrainRequest is the body of POST /api/v1/admin/retrain.
type RetrainRequest struct {
	Kind  string `json:"kind" validate:"omitempty,oneof=random_forest gradient_boosting logistic"`
	Years []int  `json:"years" validate:"omitempty,dive,gte=1968,lte=2100"`
}
