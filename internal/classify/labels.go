// Package classify wraps the trained classifier and its label encoding
// behind the capability the rest of the system consumes: fit a model from
// labeled feature vectors, persist it, and map feature vectors back to
// gesture names at serving time.
package classify

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"
)

// LabelEncoder is a bijection between the class labels observed at training
// time and the contiguous integer range [0, K). The same persisted instance
// must encode training labels and decode predictions; a freshly fitted
// encoder over a different label set would silently shuffle classes.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// FitLabels builds an encoder over the distinct labels in the input,
// assigning indices in lexicographic order.
func FitLabels(labels []string) *LabelEncoder {
	seen := make(map[string]bool, len(labels))
	var classes []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)

	return newLabelEncoder(classes)
}

func newLabelEncoder(classes []string) *LabelEncoder {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Transform maps a label to its class index.
func (e *LabelEncoder) Transform(label string) (int, error) {
	idx, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("unknown label %q", label)
	}
	return idx, nil
}

// TransformAll maps a label slice to class indices, in order.
func (e *LabelEncoder) TransformAll(labels []string) ([]int, error) {
	out := make([]int, len(labels))
	for i, l := range labels {
		idx, err := e.Transform(l)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// Inverse maps a class index back to its label. An out-of-range index is an
// error, never silently mapped.
func (e *LabelEncoder) Inverse(idx int) (string, error) {
	if idx < 0 || idx >= len(e.classes) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", idx, len(e.classes))
	}
	return e.classes[idx], nil
}

// Len returns the number of classes K.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// Classes returns the encoded class labels in index order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// encoderBlob is the gob wire form of a LabelEncoder.
type encoderBlob struct {
	Classes []string
}

// Save persists the encoder to path.
func (e *LabelEncoder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create encoder artifact: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(encoderBlob{Classes: e.classes}); err != nil {
		return fmt.Errorf("encode label encoder: %w", err)
	}
	return nil
}

// LoadLabelEncoder reads an encoder persisted by Save.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open encoder artifact: %w", err)
	}
	defer f.Close()

	var blob encoderBlob
	if err := gob.NewDecoder(f).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode label encoder: %w", err)
	}
	if len(blob.Classes) == 0 {
		return nil, fmt.Errorf("encoder artifact %s has no classes", path)
	}

	return newLabelEncoder(blob.Classes), nil
}
