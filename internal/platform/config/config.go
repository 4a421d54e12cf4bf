package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohammadpnp/profile-import/internal/platform/logger"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

const maxWorkers = 10

type Config struct {
	DatabaseURL string
	Port        string
	AutoMigrate bool
	Log         logger.Config
	Import      ImportConfig
}

type ImportConfig struct {
	BaseDir       string
	Workers       int
	LeaseDuration time.Duration
	PauseEvery    int
	PauseDuration time.Duration
	ProgressEvery int
	CountryCode   string
}

// Load reads the process configuration from the environment. A .env file in
// the working directory is applied first when present; real environment
// variables win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}

	cfg := Config{
		DatabaseURL: env.str("DATABASE_URL", ""),
		Port:        env.str("PORT", "8080"),
		AutoMigrate: env.boolean("AUTO_MIGRATE", false),
		Log: logger.Config{
			Dev: env.str("LOG_DEV", "") == "1",
		},
		Import: ImportConfig{
			BaseDir:       env.str("IMPORT_BASE_DIR", "."),
			Workers:       clampWorkers(env.integer("IMPORT_WORKERS", 2)),
			LeaseDuration: time.Duration(env.integer("IMPORT_JOB_LEASE_SECONDS", 60)) * time.Second,
			PauseEvery:    env.integer("IMPORT_PAUSE_EVERY", 5),
			PauseDuration: time.Duration(env.integer("IMPORT_PAUSE_MS", 250)) * time.Millisecond,
			ProgressEvery: env.integer("IMPORT_PROGRESS_EVERY", 25),
			CountryCode:   env.str("PHONE_COUNTRY_CODE", "256"),
		},
	}

	cfg.Log.Level = env.str("LOG_LEVEL", "info")
	if cfg.Log.Dev && getenv("LOG_LEVEL") == "" {
		cfg.Log.Level = "debug"
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}
	return cfg, nil
}

type envReader struct {
	getenv func(string) string
}

func (e envReader) str(key, fallback string) string {
	value := e.getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func (e envReader) integer(key string, fallback int) int {
	raw := e.getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (e envReader) boolean(key string, fallback bool) bool {
	raw := e.getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func clampWorkers(workers int) int {
	if workers <= 0 {
		return 1
	}
	if workers > maxWorkers {
		return maxWorkers
	}
	return workers
}
