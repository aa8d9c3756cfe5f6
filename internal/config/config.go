package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"replay-coach/internal/analytics"
)

type Config struct {
	ParserAPIURL string
	ParserAPIKey string
	DBPath       string
	ServerPort   string

	// Analytics holds the scoring/aggregation tuning; defaults can be
	// overridden per deployment without touching call sites.
	Analytics analytics.Config
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ParserAPIURL: getEnv("PARSER_API_URL", "http://localhost:8000"),
		ParserAPIKey: getEnv("PARSER_API_KEY", ""),
		DBPath:       getEnv("DB_PATH", "replays.db"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Analytics:    loadAnalytics(),
	}

	if cfg.ParserAPIKey == "" {
		return nil, fmt.Errorf("PARSER_API_KEY is required")
	}

	logger.Info().
		Str("parser_api_url", cfg.ParserAPIURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Float64("supply_block_weight", cfg.Analytics.SupplyBlock.Weight).
		Float64("production_idle_weight", cfg.Analytics.ProductionIdle.Weight).
		Int("nemesis_min_games", cfg.Analytics.NemesisMinGames).
		Msg("configuration loaded")

	return cfg, nil
}

func loadAnalytics() analytics.Config {
	ac := analytics.DefaultConfig()
	ac.SupplyBlock.Weight = getEnvFloat("SUPPLY_BLOCK_WEIGHT", ac.SupplyBlock.Weight)
	ac.ProductionIdle.Weight = getEnvFloat("PRODUCTION_IDLE_WEIGHT", ac.ProductionIdle.Weight)
	ac.NemesisMinGames = getEnvInt("NEMESIS_MIN_GAMES", ac.NemesisMinGames)
	return ac
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
