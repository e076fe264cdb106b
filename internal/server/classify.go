package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/features"
)

// Gesture strings used by classification responses alongside the actual
// class labels.
const (
	GestureNoHand          = "No Hand Detected"
	GesturePredictionError = "Prediction Error"
)

// maxUploadBytes bounds the multipart form size for classify requests.
const maxUploadBytes = 10 << 20

type classifyResponse struct {
	Gesture   string             `json:"gesture"`
	Landmarks []detector.Point3D `json:"landmarks"`
}

// handleClassify handles POST requests to /api/classify. The request carries
// a single image in the multipart field "image"; the response reports the
// predicted gesture and the detected landmarks.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// The degraded check comes before any payload work: without a model
	// there is nothing to classify.
	if s.config.Pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "Model not loaded")
		return
	}
	if s.config.Detector == nil {
		writeError(w, http.StatusServiceUnavailable, "Detector not available")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read image")
		return
	}

	response, status := classifyImage(s.config.Pipeline, s.config.Detector, s.config.Log, data)
	writeJSON(w, status, response)
}

// classifyImage runs the detection and classification pipeline on one
// encoded image. It returns the response body and HTTP status; detector and
// classifier failures map to a prediction error rather than a crash.
func classifyImage(pipeline *classify.Pipeline, d detector.Detector, log *logrus.Logger, data []byte) (classifyResponse, int) {
	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err == nil && img.Empty() {
		img.Close()
		err = errors.New("decoded image is empty")
	}
	if err != nil {
		log.WithError(err).WithField("bytes", len(data)).Warn("failed to decode image")
		return classifyResponse{Gesture: GesturePredictionError, Landmarks: []detector.Point3D{}}, http.StatusBadRequest
	}
	defer img.Close()

	hands, err := d.Detect(&img)
	if err != nil {
		log.WithError(err).Error("hand detection failed")
		return classifyResponse{Gesture: GesturePredictionError, Landmarks: []detector.Point3D{}}, http.StatusInternalServerError
	}

	if len(hands) == 0 {
		return classifyResponse{Gesture: GestureNoHand, Landmarks: []detector.Point3D{}}, http.StatusOK
	}

	hand := hands[0]
	gesture, err := pipeline.Classify(features.Normalize(&hand))
	if err != nil {
		log.WithError(err).Error("gesture classification failed")
		return classifyResponse{Gesture: GesturePredictionError, Landmarks: []detector.Point3D{}}, http.StatusInternalServerError
	}

	return classifyResponse{Gesture: gesture, Landmarks: hand.PointList()}, http.StatusOK
}
