package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// Config holds server configuration, populated from the environment.
type Config struct {
	Host string `env:"CHESSROOM_HOST"`
	Port int    `env:"CHESSROOM_PORT" envDefault:"8080"`

	// StorageType selects the room store backend: memory, file or redis
	StorageType string `env:"CHESSROOM_STORAGE" envDefault:"memory"`
	RoomsFile   string `env:"CHESSROOM_ROOMS_FILE" envDefault:"data/rooms.json"`
	RedisURL    string `env:"CHESSROOM_REDIS_URL"`

	// External move translator (optional); empty URL disables it
	TranslatorURL     string        `env:"CHESSROOM_TRANSLATOR_URL"`
	TranslatorTimeout time.Duration `env:"CHESSROOM_TRANSLATOR_TIMEOUT" envDefault:"2s"`

	// UCI engine opponent (optional); empty path falls back to the
	// random legal mover
	EnginePath      string        `env:"CHESSROOM_ENGINE_PATH"`
	EngineSkill     int           `env:"CHESSROOM_ENGINE_SKILL" envDefault:"1"`
	EngineThinkTime time.Duration `env:"CHESSROOM_ENGINE_THINK_TIME" envDefault:"100ms"`

	LogLevel slog.Level `env:"CHESSROOM_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.StorageType {
	case StorageTypeMemory, StorageTypeFile, StorageTypeRedis:
	default:
		return Config{}, fmt.Errorf("invalid CHESSROOM_STORAGE %q: must be memory, file or redis", cfg.StorageType)
	}

	if cfg.StorageType == StorageTypeRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("CHESSROOM_REDIS_URL required when CHESSROOM_STORAGE=redis")
	}

	return cfg, nil
}
