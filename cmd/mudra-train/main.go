package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/train"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogDir)

	var st *store.Store
	if cfg.DBPath != "" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.Fatalf("Failed to create data directory: %v", err)
			}
		}
		st, err = store.New(cfg.DBPath)
		if err != nil {
			logger.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()
	}

	trainer := train.New(train.Config{
		DatasetPath: cfg.DatasetPath,
		ModelPath:   cfg.ModelPath,
		EncoderPath: cfg.EncoderPath,
		Trees:       cfg.Trees,
	}, st, logger)

	if _, err := trainer.Run(); err != nil {
		logger.Fatalf("Training failed: %v", err)
	}
}
