// Package extract builds the labeled feature dataset from collections of
// gesture images on disk.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/features"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds configuration options for a dataset extraction run.
type Config struct {
	// DataDir is the root directory holding one image folder per class.
	DataDir string

	// DatasetPath is where the resulting CSV dataset is written.
	DatasetPath string

	// Classes overrides the class set to process. Empty means the full
	// fixed gesture class set.
	Classes []string
}

// Summary reports the outcome of one extraction run.
type Summary struct {
	RunID    string
	Samples  int
	Skipped  int
	Elapsed  time.Duration
	PerClass []store.ClassCount
}

// Extractor walks labeled image collections, runs hand detection on every
// image, and persists the normalized feature rows as a dataset.
type Extractor struct {
	config   Config
	detector detector.Detector
	store    *store.Store
	log      *logrus.Logger
}

// New creates an Extractor. The store is optional; when nil the run is not
// recorded in the run history.
func New(config Config, det detector.Detector, st *store.Store, log *logrus.Logger) *Extractor {
	if len(config.Classes) == 0 {
		config.Classes = features.Classes
	}
	return &Extractor{
		config:   config,
		detector: det,
		store:    st,
		log:      log,
	}
}

// Run processes every class folder and writes the dataset. Images where
// detection finds no hand are skipped rather than emitted as zero rows:
// a zero vector labeled with a letter would teach the classifier to
// associate "no hand" with that letter. Unreadable or corrupt images are
// skipped as well; the run always continues.
func (e *Extractor) Run() (*Summary, error) {
	start := time.Now()

	var samples []features.Sample
	var perClass []store.ClassCount
	totalSkipped := 0

	for _, class := range e.config.Classes {
		classDir := filepath.Join(e.config.DataDir, class)
		entries, err := os.ReadDir(classDir)
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"class": class,
				"dir":   classDir,
			}).Warn("class folder not found, skipping")
			continue
		}

		count := store.ClassCount{Label: class}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			vec, ok := e.processImage(filepath.Join(classDir, entry.Name()))
			if !ok {
				count.Skipped++
				continue
			}

			samples = append(samples, features.Sample{Features: vec, Label: class})
			count.Samples++
		}

		e.log.WithFields(logrus.Fields{
			"class":   class,
			"samples": count.Samples,
			"skipped": count.Skipped,
		}).Info("processed class")

		totalSkipped += count.Skipped
		perClass = append(perClass, count)
	}

	if err := features.WriteCSV(e.config.DatasetPath, samples); err != nil {
		return nil, fmt.Errorf("persist dataset: %w", err)
	}

	summary := &Summary{
		RunID:    uuid.New().String(),
		Samples:  len(samples),
		Skipped:  totalSkipped,
		Elapsed:  time.Since(start),
		PerClass: perClass,
	}

	if e.store != nil {
		run := &store.ExtractionRun{
			ID:          summary.RunID,
			DatasetPath: e.config.DatasetPath,
			Samples:     summary.Samples,
			Skipped:     summary.Skipped,
			Duration:    summary.Elapsed,
		}
		if err := e.store.ExtractionRuns().Create(run, perClass); err != nil {
			e.log.WithError(err).Warn("failed to record extraction run")
		}
	}

	e.log.WithFields(logrus.Fields{
		"samples": summary.Samples,
		"skipped": summary.Skipped,
		"elapsed": summary.Elapsed.Round(time.Millisecond).String(),
		"dataset": e.config.DatasetPath,
	}).Info("extraction complete")

	return summary, nil
}

// processImage turns one image file into a feature vector. The second return
// reports whether a row should be emitted; every failure mode is a skip.
func (e *Extractor) processImage(path string) ([]float64, bool) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		e.log.WithField("image", path).Debug("unreadable image, skipping")
		return nil, false
	}
	defer img.Close()

	hands, err := e.detector.Detect(&img)
	if err != nil {
		e.log.WithError(err).WithField("image", path).Debug("detection failed, skipping")
		return nil, false
	}
	if len(hands) == 0 {
		return nil, false
	}

	return features.Normalize(&hands[0]), true
}
