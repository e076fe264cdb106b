package features

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ayusman/mudra/internal/detector"
)

// Classes is the fixed gesture class set: the finger-spelling alphabet plus
// the three control signs. Dataset folders are named after these.
var Classes = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"nothing", "space", "del",
}

// LabelColumn is the name of the dataset's label column.
const LabelColumn = "Label"

var axes = [3]string{"x", "y", "z"}

// Sample is one labeled feature row of the dataset.
type Sample struct {
	Features []float64
	Label    string
}

// Columns returns the dataset's feature column names in the exact order
// Normalize emits values: LM_0_x, LM_0_y, LM_0_z, ..., LM_20_z. The column
// order is the dataset's load-bearing invariant; consumers cannot detect a
// permutation, so this is the only place the schema is defined.
func Columns() []string {
	cols := make([]string, 0, Length)
	for i := 0; i < detector.NumLandmarks; i++ {
		for _, axis := range axes {
			cols = append(cols, fmt.Sprintf("LM_%d_%s", i, axis))
		}
	}
	return cols
}

// WriteCSV persists samples as a CSV dataset: 63 feature columns followed by
// the label column. Rows are written in the given order.
func WriteCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append(Columns(), LabelColumn)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, Length+1)
	for i, s := range samples {
		if len(s.Features) != Length {
			return fmt.Errorf("sample %d has %d features, expected %d", i, len(s.Features), Length)
		}
		for j, v := range s.Features {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		record[Length] = s.Label
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// ReadCSV loads a dataset written by WriteCSV. The header is validated
// against the schema; a stray leading row-index column (an artifact some
// tabular tools prepend) is detected and dropped. Any other header mismatch
// is an error, since a silently permuted dataset would train a model that
// disagrees with the serving-time transform.
func ReadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	offset, err := headerOffset(header)
	if err != nil {
		return nil, err
	}

	var samples []Sample
	row := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", row, len(record), len(header))
		}

		featureVec := make([]float64, Length)
		for j := 0; j < Length; j++ {
			v, err := strconv.ParseFloat(record[offset+j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", row, header[offset+j], err)
			}
			featureVec[j] = v
		}

		samples = append(samples, Sample{
			Features: featureVec,
			Label:    record[offset+Length],
		})
		row++
	}

	return samples, nil
}

// headerOffset validates the header and returns the index of the first
// feature column (1 when a row-index column precedes the schema, else 0).
func headerOffset(header []string) (int, error) {
	want := append(Columns(), LabelColumn)

	offset := 0
	if len(header) == len(want)+1 && header[0] != want[0] {
		offset = 1
	}

	if len(header)-offset != len(want) {
		return 0, fmt.Errorf("dataset has %d columns, expected %d", len(header), len(want))
	}
	for i, name := range want {
		if header[offset+i] != name {
			return 0, fmt.Errorf("dataset column %d is %q, expected %q", offset+i, header[offset+i], name)
		}
	}
	return offset, nil
}
