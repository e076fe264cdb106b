// Package features implements the wrist-relative feature transform shared by
// the dataset builder and the inference service, and the on-disk dataset
// format produced from it. The transform must be the single code path from a
// landmark set to a feature vector: the trained model has no way to detect a
// divergence between the offline and online representations.
package features

import "github.com/ayusman/mudra/internal/detector"

// Length is the fixed size of a feature vector: 21 landmarks x 3 axes.
const Length = 3 * detector.NumLandmarks

// Normalize converts a detected hand into a fixed-length feature vector.
//
// Every landmark is translated so the wrist (landmark 0) becomes the origin,
// which removes the hand's absolute position in the frame while preserving
// scale, rotation and articulation. The wrist's own (0,0,0) triple is kept
// in the output so feature indices line up with the landmark indices used
// when the training dataset was built.
//
// A nil hand yields a vector of 63 zeros. The result always has exactly
// Length elements, and identical input coordinates produce bit-identical
// output.
func Normalize(hand *detector.HandLandmarks) []float64 {
	features := make([]float64, 0, Length)

	if hand != nil {
		wrist := hand.Points[detector.Wrist]
		for _, p := range hand.Points {
			features = append(features,
				p.X-wrist.X,
				p.Y-wrist.Y,
				p.Z-wrist.Z,
			)
		}
	}

	return clampLength(features)
}

// NormalizePoints is the malformed-input variant of Normalize for callers
// holding a raw point slice rather than a full HandLandmarks. Short input is
// right-padded with zeros and long input truncated, so the result is always
// exactly Length elements. An empty slice yields the all-zero vector.
func NormalizePoints(points []detector.Point3D) []float64 {
	features := make([]float64, 0, Length)

	if len(points) > 0 {
		wrist := points[0]
		for _, p := range points {
			features = append(features,
				p.X-wrist.X,
				p.Y-wrist.Y,
				p.Z-wrist.Z,
			)
		}
	}

	return clampLength(features)
}

func clampLength(features []float64) []float64 {
	if len(features) > Length {
		return features[:Length]
	}
	for len(features) < Length {
		features = append(features, 0)
	}
	return features
}
