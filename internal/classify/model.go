package classify

import (
	"encoding/gob"
	"fmt"
	"os"

	randomforest "github.com/malaschitz/randomForest"
)

// Model is the trained classifier: a bagged decision-tree ensemble mapping a
// feature vector to a class index. It is created once by the trainer and
// loaded read-only by the inference service.
type Model struct {
	forest randomforest.Forest
}

// TrainModel fits a random forest with the given number of trees on labeled
// feature vectors. Class indices must cover a contiguous range [0, K).
func TrainModel(x [][]float64, y []int, trees int) (*Model, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("no training samples")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and labels (%d) differ", len(x), len(y))
	}
	if trees <= 0 {
		return nil, fmt.Errorf("tree count must be positive, got %d", trees)
	}

	m := &Model{}
	m.forest.Data = randomforest.ForestData{X: x, Class: y}
	m.forest.Train(trees)

	return m, nil
}

// Predict returns the class index with the most votes for one feature
// vector.
func (m *Model) Predict(features []float64) (int, error) {
	if len(m.forest.Trees) == 0 {
		return 0, fmt.Errorf("model has no trees")
	}

	votes := m.forest.Vote(features)
	if len(votes) == 0 {
		return 0, fmt.Errorf("model produced no votes")
	}

	best := 0
	for i, v := range votes {
		if v > votes[best] {
			best = i
		}
	}
	return best, nil
}

// Save persists the model to path. The training data is not part of the
// artifact; only the fitted trees and ensemble metadata are written.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model artifact: %w", err)
	}
	defer f.Close()

	snapshot := m.forest
	snapshot.Data = randomforest.ForestData{}

	if err := gob.NewEncoder(f).Encode(&snapshot); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return nil
}

// LoadModel reads a model persisted by Save.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	m := &Model{}
	if err := gob.NewDecoder(f).Decode(&m.forest); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if len(m.forest.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s has no trees", path)
	}

	return m, nil
}
