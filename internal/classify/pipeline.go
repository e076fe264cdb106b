package classify

import "fmt"

// Pipeline pairs the trained model with the label encoding it was trained
// against. The two artifacts are persisted separately but are logically one
// unit: loading fails atomically if either is missing or unreadable, so the
// service can never start with half a trained pipeline.
type Pipeline struct {
	model  *Model
	labels *LabelEncoder
}

// NewPipeline pairs an in-memory model and encoder, typically right after
// training.
func NewPipeline(model *Model, labels *LabelEncoder) *Pipeline {
	return &Pipeline{model: model, labels: labels}
}

// LoadPipeline loads both artifacts from their well-known locations.
func LoadPipeline(modelPath, encoderPath string) (*Pipeline, error) {
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load pipeline: %w", err)
	}

	labels, err := LoadLabelEncoder(encoderPath)
	if err != nil {
		return nil, fmt.Errorf("load pipeline: %w", err)
	}

	return &Pipeline{model: model, labels: labels}, nil
}

// Save persists both artifacts.
func (p *Pipeline) Save(modelPath, encoderPath string) error {
	if err := p.model.Save(modelPath); err != nil {
		return err
	}
	return p.labels.Save(encoderPath)
}

// Classify maps one feature vector to its human-readable gesture label.
func (p *Pipeline) Classify(features []float64) (string, error) {
	idx, err := p.model.Predict(features)
	if err != nil {
		return "", err
	}
	return p.labels.Inverse(idx)
}

// NumClasses returns the number of gesture classes the pipeline was trained
// on.
func (p *Pipeline) NumClasses() int {
	return p.labels.Len()
}

// ClassLabels returns the trained class labels in index order.
func (p *Pipeline) ClassLabels() []string {
	return p.labels.Classes()
}
