package classify

import (
	"path/filepath"
	"testing"
)

func TestFitLabels(t *testing.T) {
	t.Run("assigns lexicographic indices over distinct labels", func(t *testing.T) {
		enc := FitLabels([]string{"space", "A", "B", "A", "nothing", "B"})

		want := []string{"A", "B", "nothing", "space"}
		got := enc.Classes()

		if len(got) != len(want) {
			t.Fatalf("expected %d classes, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("class %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("round trip for every label", func(t *testing.T) {
		labels := []string{"A", "B", "C", "del", "nothing", "space"}
		enc := FitLabels(labels)

		for _, l := range labels {
			idx, err := enc.Transform(l)
			if err != nil {
				t.Fatalf("transform %s: %v", l, err)
			}
			back, err := enc.Inverse(idx)
			if err != nil {
				t.Fatalf("inverse %d: %v", idx, err)
			}
			if back != l {
				t.Errorf("expected round trip of %s, got %s", l, back)
			}
		}
	})

	t.Run("unknown label is an error", func(t *testing.T) {
		enc := FitLabels([]string{"A", "B"})

		if _, err := enc.Transform("Z"); err == nil {
			t.Fatal("expected error for unknown label")
		}
	})

	t.Run("out of range index is an error", func(t *testing.T) {
		enc := FitLabels([]string{"A", "B"})

		cases := []int{-1, 2, 100}
		for _, idx := range cases {
			if _, err := enc.Inverse(idx); err == nil {
				t.Errorf("expected error for index %d", idx)
			}
		}
	})

	t.Run("TransformAll preserves order", func(t *testing.T) {
		enc := FitLabels([]string{"A", "B", "C"})

		got, err := enc.TransformAll([]string{"C", "A", "B"})
		if err != nil {
			t.Fatalf("transform all: %v", err)
		}

		want := []int{2, 0, 1}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
			}
		}
	})
}

func TestLabelEncoderPersistence(t *testing.T) {
	t.Run("save and load preserve the bijection", func(t *testing.T) {
		enc := FitLabels([]string{"del", "space", "A", "nothing"})
		path := filepath.Join(t.TempDir(), "label_encoder.gob")

		if err := enc.Save(path); err != nil {
			t.Fatalf("save encoder: %v", err)
		}

		loaded, err := LoadLabelEncoder(path)
		if err != nil {
			t.Fatalf("load encoder: %v", err)
		}

		if loaded.Len() != enc.Len() {
			t.Fatalf("expected %d classes, got %d", enc.Len(), loaded.Len())
		}
		for _, l := range enc.Classes() {
			before, _ := enc.Transform(l)
			after, err := loaded.Transform(l)
			if err != nil {
				t.Fatalf("transform %s after load: %v", l, err)
			}
			if before != after {
				t.Errorf("label %s: index changed from %d to %d across persistence", l, before, after)
			}
		}
	})

	t.Run("loading a missing artifact is an error", func(t *testing.T) {
		if _, err := LoadLabelEncoder(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
			t.Fatal("expected error for missing encoder artifact")
		}
	})
}
