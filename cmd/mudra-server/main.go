package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/logging"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
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

	// A missing model is not fatal: the server starts degraded and
	// reports 503 on classification until artifacts are trained.
	pipeline, err := classify.LoadPipeline(cfg.ModelPath, cfg.EncoderPath)
	if err != nil {
		logger.WithError(err).Warn("model artifacts unavailable, serving degraded")
		pipeline = nil
	} else {
		logger.WithField("classes", pipeline.NumClasses()).Info("model loaded")
	}

	mpConfig := detector.StreamConfig()
	mpConfig.MinConfidence = cfg.MinConfidence
	mpConfig.ScriptPath = cfg.ScriptPath

	// Try MediaPipe first, fall back to mock detector
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(mpConfig); err == nil {
		det = mp
		logger.Info("using MediaPipe hand detection")
	} else {
		logger.WithError(err).Warn("MediaPipe not available, using mock detector")
		det = detector.NewMockDetector()
	}
	defer det.Close()

	staticDir := cfg.StaticDir
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
			staticDir = ""
		}
	}

	srv := server.New(server.Config{
		Pipeline:  pipeline,
		Detector:  det,
		Store:     st,
		StaticDir: staticDir,
		Log:       logger,
	})

	logger.WithField("addr", cfg.Addr).Info("starting gesture service")
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
