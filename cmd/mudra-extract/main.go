package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/extract"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogDir)

	mpConfig := detector.StaticConfig()
	mpConfig.MinConfidence = cfg.MinConfidence
	mpConfig.ScriptPath = cfg.ScriptPath

	// Extraction needs real detection; a mock fallback would only
	// produce an empty dataset.
	det, err := detector.NewMediaPipeDetector(mpConfig)
	if err != nil {
		logger.Fatalf("MediaPipe not available: %v", err)
	}
	defer det.Close()

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

	extractor := extract.New(extract.Config{
		DataDir:     cfg.DataDir,
		DatasetPath: cfg.DatasetPath,
	}, det, st, logger)

	summary, err := extractor.Run()
	if err != nil {
		logger.Fatalf("Extraction failed: %v", err)
	}

	if summary.Samples == 0 {
		logger.Warn("no hands detected in any image, dataset is empty")
	}
}
