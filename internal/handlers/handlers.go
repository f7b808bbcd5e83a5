package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sportstat/tennis-api/internal/logic"
	"github.com/sportstat/tennis-api/internal/worker"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// RetrainQueue defines the interface for the retrain worker
type RetrainQueue interface {
	Enqueue(job worker.Job) bool
}

type Config struct {
	Prediction logic.PredictionService
	Retrainer  RetrainQueue
	Redis      *redis.Client
	Logger     *zap.Logger
	// ModelPath is where admin-triggered retrains persist the bundle
	ModelPath string
}

type Handler struct {
	prediction logic.PredictionService
	retrainer  RetrainQueue
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	modelPath  string
}

func New(cfg Config) *Handler {
	return &Handler{
		prediction: cfg.Prediction,
		retrainer:  cfg.Retrainer,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		modelPath:  cfg.ModelPath,
	}
}
