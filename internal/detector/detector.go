package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	// Ignored in static image mode.
	MinTrackingConf float64

	// StaticImageMode disables inter-frame tracking. Use for batch
	// processing of unrelated images; leave off for video streams.
	StaticImageMode bool

	// ScriptPath optionally overrides the location of the detection
	// service script. Empty means search the default locations.
	ScriptPath string
}

// StreamConfig returns the single-hand configuration used by the inference
// service, tuned for consecutive frames from one client.
func StreamConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

// StaticConfig returns the single-hand configuration used by the dataset
// builder, where every image is independent.
func StaticConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		StaticImageMode: true,
	}
}
