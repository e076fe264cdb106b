package features

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

const epsilon = 1e-12

func TestNormalize(t *testing.T) {
	t.Run("wrist triple is exactly zero", func(t *testing.T) {
		hand := detector.LetterALandmarks()

		got := Normalize(&hand)

		for i := 0; i < 3; i++ {
			if got[i] != 0 {
				t.Errorf("feature %d: expected exactly 0, got %g", i, got[i])
			}
		}
	})

	t.Run("output length is always 63", func(t *testing.T) {
		hand := detector.LetterBLandmarks()

		cases := []struct {
			name string
			got  []float64
		}{
			{"nil hand", Normalize(nil)},
			{"full hand", Normalize(&hand)},
			{"empty points", NormalizePoints(nil)},
			{"short points", NormalizePoints(hand.Points[:5])},
			{"long points", NormalizePoints(append(hand.PointList(), detector.Point3D{X: 1}))},
		}

		for _, tc := range cases {
			if len(tc.got) != Length {
				t.Errorf("%s: expected length %d, got %d", tc.name, Length, len(tc.got))
			}
		}
	})

	t.Run("nil hand yields all zeros", func(t *testing.T) {
		got := Normalize(nil)

		for i, v := range got {
			if v != 0 {
				t.Fatalf("feature %d: expected 0, got %g", i, v)
			}
		}
	})

	t.Run("features follow landmark order wrist-relative", func(t *testing.T) {
		hand := detector.LetterALandmarks()
		wrist := hand.Points[detector.Wrist]

		got := Normalize(&hand)

		for i := 0; i < detector.NumLandmarks; i++ {
			p := hand.Points[i]
			if got[3*i] != p.X-wrist.X || got[3*i+1] != p.Y-wrist.Y || got[3*i+2] != p.Z-wrist.Z {
				t.Fatalf("landmark %d: expected (%g,%g,%g), got (%g,%g,%g)",
					i, p.X-wrist.X, p.Y-wrist.Y, p.Z-wrist.Z,
					got[3*i], got[3*i+1], got[3*i+2])
			}
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		hand := detector.LetterBLandmarks()

		a := Normalize(&hand)
		b := Normalize(&hand)

		for i := range a {
			if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
				t.Fatalf("feature %d: bit patterns differ (%x vs %x)",
					i, math.Float64bits(a[i]), math.Float64bits(b[i]))
			}
		}
	})

	t.Run("invariant under translation", func(t *testing.T) {
		hand := detector.LetterALandmarks()
		shifted := hand
		for i := range shifted.Points {
			shifted.Points[i].X += 0.125
			shifted.Points[i].Y -= 0.25
			shifted.Points[i].Z += 0.0625
		}

		a := Normalize(&hand)
		b := Normalize(&shifted)

		for i := range a {
			if math.Abs(a[i]-b[i]) > epsilon {
				t.Fatalf("feature %d: %g != %g after translation", i, a[i], b[i])
			}
		}
	})

	t.Run("scale and articulation are preserved", func(t *testing.T) {
		hand := detector.LetterBLandmarks()
		scaled := hand
		for i := range scaled.Points {
			scaled.Points[i].X *= 2
			scaled.Points[i].Y *= 2
			scaled.Points[i].Z *= 2
		}

		a := Normalize(&hand)
		b := Normalize(&scaled)

		// Doubling the hand doubles the relative coordinates too: this
		// transform translates only, it must not rescale.
		for i := range a {
			if math.Abs(b[i]-2*a[i]) > epsilon {
				t.Fatalf("feature %d: expected %g, got %g", i, 2*a[i], b[i])
			}
		}
	})

	t.Run("short input is right padded with zeros", func(t *testing.T) {
		points := []detector.Point3D{
			{X: 0.5, Y: 0.5, Z: 0.1},
			{X: 0.6, Y: 0.4, Z: 0.1},
		}

		got := NormalizePoints(points)

		if got[3] != points[1].X-points[0].X {
			t.Errorf("expected second landmark X of %g, got %g", points[1].X-points[0].X, got[3])
		}
		for i := 6; i < Length; i++ {
			if got[i] != 0 {
				t.Fatalf("feature %d: expected zero padding, got %g", i, got[i])
			}
		}
	})
}
