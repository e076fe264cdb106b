// Package train fits the gesture classifier from a persisted feature dataset
// and produces the paired model and label-encoder artifacts consumed by the
// inference service.
package train

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/features"
	"github.com/ayusman/mudra/internal/store"
)

// Training defaults matching the dataset pipeline this system ships with.
const (
	DefaultTrees        = 100
	DefaultTestFraction = 0.2
	DefaultSeed         = 42
)

// Config holds configuration options for a training run.
type Config struct {
	// DatasetPath is the CSV dataset produced by the extractor.
	DatasetPath string

	// ModelPath and EncoderPath are where the paired artifacts are
	// written. Both are required together at serving time.
	ModelPath   string
	EncoderPath string

	// Trees is the forest size. Zero means DefaultTrees.
	Trees int

	// TestFraction is the evaluation share of the split. Zero means
	// DefaultTestFraction.
	TestFraction float64

	// Seed fixes the split for reproducibility. Zero means DefaultSeed.
	Seed int64
}

// Result reports the outcome of one training run.
type Result struct {
	RunID     string
	Rows      int
	Classes   int
	TrainRows int
	TestRows  int
	Accuracy  float64
	Elapsed   time.Duration
}

// Trainer loads a dataset, fits the label encoding and the classifier, and
// persists both artifacts.
type Trainer struct {
	config Config
	store  *store.Store
	log    *logrus.Logger
}

// New creates a Trainer. The store is optional; when nil the run is not
// recorded in the run history.
func New(config Config, st *store.Store, log *logrus.Logger) *Trainer {
	if config.Trees == 0 {
		config.Trees = DefaultTrees
	}
	if config.TestFraction == 0 {
		config.TestFraction = DefaultTestFraction
	}
	if config.Seed == 0 {
		config.Seed = DefaultSeed
	}
	return &Trainer{
		config: config,
		store:  st,
		log:    log,
	}
}

// Run executes the full training job. A dataset that cannot be loaded is a
// fatal error; the job cannot proceed without data. Evaluation accuracy is
// reported but never gates persistence: any trained model is saved.
func (t *Trainer) Run() (*Result, error) {
	start := time.Now()

	samples, err := features.ReadCSV(t.config.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", t.config.DatasetPath)
	}

	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
	}

	encoder := classify.FitLabels(labels)
	y, err := encoder.TransformAll(labels)
	if err != nil {
		return nil, fmt.Errorf("encode labels: %w", err)
	}

	trainIdx, testIdx := StratifiedSplit(y, t.config.TestFraction, t.config.Seed)

	xTrain, yTrain := gather(samples, y, trainIdx)
	xTest, yTest := gather(samples, y, testIdx)

	t.log.WithFields(logrus.Fields{
		"rows":    len(samples),
		"classes": encoder.Len(),
		"train":   len(trainIdx),
		"test":    len(testIdx),
		"trees":   t.config.Trees,
	}).Info("training random forest")

	model, err := classify.TrainModel(xTrain, yTrain, t.config.Trees)
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	accuracy, err := evaluate(model, xTest, yTest)
	if err != nil {
		return nil, fmt.Errorf("evaluate classifier: %w", err)
	}

	pipeline := classify.NewPipeline(model, encoder)
	if err := t.saveArtifacts(pipeline); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.New().String(),
		Rows:      len(samples),
		Classes:   encoder.Len(),
		TrainRows: len(trainIdx),
		TestRows:  len(testIdx),
		Accuracy:  accuracy,
		Elapsed:   time.Since(start),
	}

	if t.store != nil {
		run := &store.TrainingRun{
			ID:          result.RunID,
			DatasetPath: t.config.DatasetPath,
			Rows:        result.Rows,
			Classes:     result.Classes,
			Accuracy:    result.Accuracy,
			ModelPath:   t.config.ModelPath,
			EncoderPath: t.config.EncoderPath,
		}
		if err := t.store.TrainingRuns().Create(run); err != nil {
			t.log.WithError(err).Warn("failed to record training run")
		}
	}

	t.log.WithFields(logrus.Fields{
		"accuracy": fmt.Sprintf("%.2f%%", accuracy*100),
		"model":    t.config.ModelPath,
		"encoder":  t.config.EncoderPath,
		"elapsed":  result.Elapsed.Round(time.Millisecond).String(),
	}).Info("training complete")

	return result, nil
}

func (t *Trainer) saveArtifacts(pipeline *classify.Pipeline) error {
	for _, path := range []string{t.config.ModelPath, t.config.EncoderPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create artifact directory: %w", err)
			}
		}
	}

	if err := pipeline.Save(t.config.ModelPath, t.config.EncoderPath); err != nil {
		return fmt.Errorf("persist artifacts: %w", err)
	}
	return nil
}

// gather assembles the feature matrix and label vector for a set of row
// indices.
func gather(samples []features.Sample, y []int, idx []int) ([][]float64, []int) {
	x := make([][]float64, len(idx))
	labels := make([]int, len(idx))
	for i, row := range idx {
		x[i] = samples[row].Features
		labels[i] = y[row]
	}
	return x, labels
}

// evaluate computes the fraction of evaluation rows the model predicts
// correctly. An empty evaluation partition yields zero accuracy.
func evaluate(model *classify.Model, x [][]float64, y []int) (float64, error) {
	if len(x) == 0 {
		return 0, nil
	}

	correct := 0
	for i, row := range x {
		got, err := model.Predict(row)
		if err != nil {
			return 0, err
		}
		if got == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x)), nil
}
