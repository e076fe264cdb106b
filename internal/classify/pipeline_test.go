package classify

import (
	"math/rand"
	"path/filepath"
	"testing"
)

// trainingSet builds a small, well-separated two-class problem: class 0
// clusters near the origin, class 1 near one. Jitter is seeded so the set is
// identical on every run.
func trainingSet(perClass int) (x [][]float64, y []int) {
	rng := rand.New(rand.NewSource(42))

	for class := 0; class < 2; class++ {
		center := float64(class)
		for i := 0; i < perClass; i++ {
			row := make([]float64, 63)
			for j := range row {
				row[j] = center + rng.Float64()*0.05
			}
			x = append(x, row)
			y = append(y, class)
		}
	}
	return x, y
}

func TestTrainModel(t *testing.T) {
	t.Run("separable classes are recovered on training points", func(t *testing.T) {
		x, y := trainingSet(10)

		model, err := TrainModel(x, y, 30)
		if err != nil {
			t.Fatalf("train model: %v", err)
		}

		for i, row := range x {
			got, err := model.Predict(row)
			if err != nil {
				t.Fatalf("predict row %d: %v", i, err)
			}
			if got != y[i] {
				t.Errorf("row %d: expected class %d, got %d", i, y[i], got)
			}
		}
	})

	t.Run("rejects empty training set", func(t *testing.T) {
		if _, err := TrainModel(nil, nil, 10); err == nil {
			t.Fatal("expected error for empty training set")
		}
	})

	t.Run("rejects mismatched rows and labels", func(t *testing.T) {
		x, y := trainingSet(4)
		if _, err := TrainModel(x, y[:len(y)-1], 10); err == nil {
			t.Fatal("expected error for mismatched lengths")
		}
	})

	t.Run("rejects non-positive tree count", func(t *testing.T) {
		x, y := trainingSet(4)
		if _, err := TrainModel(x, y, 0); err == nil {
			t.Fatal("expected error for zero trees")
		}
	})
}

func TestModelPersistence(t *testing.T) {
	x, y := trainingSet(10)

	model, err := TrainModel(x, y, 30)
	if err != nil {
		t.Fatalf("train model: %v", err)
	}

	path := filepath.Join(t.TempDir(), "gesture_model.gob")
	if err := model.Save(path); err != nil {
		t.Fatalf("save model: %v", err)
	}

	loaded, err := LoadModel(path)
	if err != nil {
		t.Fatalf("load model: %v", err)
	}

	t.Run("loaded model predicts like the original", func(t *testing.T) {
		for i, row := range x {
			before, err := model.Predict(row)
			if err != nil {
				t.Fatalf("predict before save: %v", err)
			}
			after, err := loaded.Predict(row)
			if err != nil {
				t.Fatalf("predict after load: %v", err)
			}
			if before != after {
				t.Errorf("row %d: prediction changed from %d to %d across persistence", i, before, after)
			}
		}
	})

	t.Run("missing model artifact is an error", func(t *testing.T) {
		if _, err := LoadModel(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
			t.Fatal("expected error for missing model artifact")
		}
	})
}

func TestPipeline(t *testing.T) {
	x, y := trainingSet(10)

	model, err := TrainModel(x, y, 30)
	if err != nil {
		t.Fatalf("train model: %v", err)
	}
	enc := FitLabels([]string{"A", "B", "A", "B"})
	pipeline := NewPipeline(model, enc)

	t.Run("classify maps votes to labels", func(t *testing.T) {
		got, err := pipeline.Classify(x[0])
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if got != "A" {
			t.Errorf("expected label A, got %s", got)
		}

		got, err = pipeline.Classify(x[len(x)-1])
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if got != "B" {
			t.Errorf("expected label B, got %s", got)
		}
	})

	t.Run("save and load as a pair", func(t *testing.T) {
		dir := t.TempDir()
		modelPath := filepath.Join(dir, "gesture_model.gob")
		encoderPath := filepath.Join(dir, "label_encoder.gob")

		if err := pipeline.Save(modelPath, encoderPath); err != nil {
			t.Fatalf("save pipeline: %v", err)
		}

		loaded, err := LoadPipeline(modelPath, encoderPath)
		if err != nil {
			t.Fatalf("load pipeline: %v", err)
		}

		if loaded.NumClasses() != 2 {
			t.Errorf("expected 2 classes, got %d", loaded.NumClasses())
		}

		got, err := loaded.Classify(x[0])
		if err != nil {
			t.Fatalf("classify after load: %v", err)
		}
		if got != "A" {
			t.Errorf("expected label A after load, got %s", got)
		}
	})

	t.Run("loading fails atomically when either artifact is missing", func(t *testing.T) {
		dir := t.TempDir()
		modelPath := filepath.Join(dir, "gesture_model.gob")
		encoderPath := filepath.Join(dir, "label_encoder.gob")

		if err := pipeline.Save(modelPath, encoderPath); err != nil {
			t.Fatalf("save pipeline: %v", err)
		}

		if _, err := LoadPipeline(modelPath, filepath.Join(dir, "absent.gob")); err == nil {
			t.Error("expected error when encoder artifact is missing")
		}
		if _, err := LoadPipeline(filepath.Join(dir, "absent.gob"), encoderPath); err == nil {
			t.Error("expected error when model artifact is missing")
		}
	})
}
