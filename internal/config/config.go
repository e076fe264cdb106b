// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultAddr          = ":8080"
	DefaultDataDir       = "data/raw_images"
	DefaultDatasetPath   = "data/processed_keypoints.csv"
	DefaultModelPath     = "model/gesture_model.gob"
	DefaultEncoderPath   = "model/label_encoder.gob"
	DefaultDBPath        = "data/mudra.db"
	DefaultStaticDir     = "static"
	DefaultMinConfidence = 0.5
	DefaultTrees         = 100
)

// Config holds the settings shared by the server, extractor, and trainer
// binaries.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DataDir is the root of the raw image tree, one subdirectory per
	// gesture label.
	DataDir string

	// DatasetPath is the extracted feature CSV.
	DatasetPath string

	// ModelPath and EncoderPath are the classifier artifacts.
	ModelPath   string
	EncoderPath string

	// DBPath is the SQLite run-history database. Empty disables run
	// recording.
	DBPath string

	// StaticDir serves the browser frontend. Empty disables it.
	StaticDir string

	// ScriptPath overrides the hand detection script location.
	ScriptPath string

	// LogDir enables rotated file logging when set.
	LogDir string

	// MinConfidence is the detection confidence threshold.
	MinConfidence float64

	// Trees is the forest size used by the trainer.
	Trees int
}

// Load reads configuration from MUDRA_* environment variables. A .env file
// in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          getEnv("MUDRA_ADDR", DefaultAddr),
		DataDir:       getEnv("MUDRA_DATA_DIR", DefaultDataDir),
		DatasetPath:   getEnv("MUDRA_DATASET_PATH", DefaultDatasetPath),
		ModelPath:     getEnv("MUDRA_MODEL_PATH", DefaultModelPath),
		EncoderPath:   getEnv("MUDRA_ENCODER_PATH", DefaultEncoderPath),
		DBPath:        getEnv("MUDRA_DB_PATH", DefaultDBPath),
		StaticDir:     getEnv("MUDRA_STATIC_DIR", DefaultStaticDir),
		ScriptPath:    os.Getenv("MUDRA_SCRIPT_PATH"),
		LogDir:        os.Getenv("MUDRA_LOG_DIR"),
		MinConfidence: DefaultMinConfidence,
		Trees:         DefaultTrees,
	}

	if v := os.Getenv("MUDRA_MIN_CONFIDENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MUDRA_MIN_CONFIDENCE %q: %w", v, err)
		}
		if f <= 0 || f > 1 {
			return nil, fmt.Errorf("MUDRA_MIN_CONFIDENCE %v out of range (0, 1]", f)
		}
		cfg.MinConfidence = f
	}

	if v := os.Getenv("MUDRA_TREES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MUDRA_TREES %q: %w", v, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("MUDRA_TREES must be positive, got %d", n)
		}
		cfg.Trees = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
