// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the leaderboard/session database
	LogLevel string
	Port     int
	DevMode  bool
	UserID   string // Name final scores are recorded under

	Game GameConfig
}

// GameConfig holds the tunables of a single game session. Defaults match the
// original browser game: 10 rounds of 60 seconds, 10,000 starting cash.
type GameConfig struct {
	StartingCash float64
	Rounds       int
	RoundLength  time.Duration

	PriceInterval    time.Duration // price + net-worth + mission re-evaluation cadence
	NewsInterval     time.Duration // news generation cadence
	NewsLifetime     time.Duration // how long a news item stays active
	HealthJitterProb float64       // per-tick chance of a market-health perturbation
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("ENGINE_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	cfg := &Config{
		DataDir:  absDataDir,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvAsInt("ENGINE_PORT", 8080),
		DevMode:  getEnvAsBool("DEV_MODE", false),
		UserID:   getEnv("ENGINE_USER_ID", "anonymous"),
		Game: GameConfig{
			StartingCash:     getEnvAsFloat("GAME_STARTING_CASH", 10000),
			Rounds:           getEnvAsInt("GAME_ROUNDS", 10),
			RoundLength:      getEnvAsDuration("GAME_ROUND_LENGTH", 60*time.Second),
			PriceInterval:    getEnvAsDuration("GAME_PRICE_INTERVAL", time.Second),
			NewsInterval:     getEnvAsDuration("GAME_NEWS_INTERVAL", 5*time.Second),
			NewsLifetime:     getEnvAsDuration("GAME_NEWS_LIFETIME", 15*time.Second),
			HealthJitterProb: getEnvAsFloat("GAME_HEALTH_JITTER_PROB", 0.02),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Game.StartingCash <= 0 {
		return fmt.Errorf("GAME_STARTING_CASH must be positive")
	}
	if c.Game.Rounds <= 0 {
		return fmt.Errorf("GAME_ROUNDS must be positive")
	}
	if c.Game.RoundLength <= 0 {
		return fmt.Errorf("GAME_ROUND_LENGTH must be positive")
	}
	if c.Game.HealthJitterProb < 0 || c.Game.HealthJitterProb > 1 {
		return fmt.Errorf("GAME_HEALTH_JITTER_PROB must be in [0,1]")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
