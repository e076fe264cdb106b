// Package detector provides the hand landmark detection capability consumed
// by the extraction and serving pipelines.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in detector-native normalized image space.
// X and Y are in [0,1] relative to image width/height; Z is relative depth,
// roughly on the same scale as X.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for a single hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// PointList returns the landmark points as a slice in landmark-index order.
// Clients use this to draw overlays in absolute image coordinates; it is
// independent of the wrist-relative features used for classification.
func (h *HandLandmarks) PointList() []Point3D {
	if h == nil {
		return nil
	}
	points := make([]Point3D, NumLandmarks)
	copy(points, h.Points[:])
	return points
}
