package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Data sources. CSV is the default; ClickHouse takes over when its
	// URL is set. Postgres and Redis are optional extras.
	DataDir       string
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Model
	ModelPath string
	ModelKind string

	// Season used to build the player directory
	DirectoryYear int

	// Explanation thresholds
	RankGap        float64
	AgeGap         float64
	HeightGap      float64
	CoinFlipMargin float64
	StrongFavorite float64
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		DataDir:       getEnv("DATA_DIR", "data"),
		PostgresURL:   getEnv("POSTGRES_URL", ""),
		ClickHouseURL: getEnv("CLICKHOUSE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		ModelPath: getEnv("MODEL_PATH", "tennis_model.json"),
		ModelKind: getEnv("MODEL_KIND", "random_forest"),

		DirectoryYear: getEnvInt("DIRECTORY_YEAR", 2024),

		RankGap:        getEnvFloat("EXPLAIN_RANK_GAP", 10),
		AgeGap:         getEnvFloat("EXPLAIN_AGE_GAP", 5),
		HeightGap:      getEnvFloat("EXPLAIN_HEIGHT_GAP", 5),
		CoinFlipMargin: getEnvFloat("EXPLAIN_COIN_FLIP_MARGIN", 5),
		StrongFavorite: getEnvFloat("EXPLAIN_STRONG_FAVORITE", 70),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
