package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StreamHandler classifies a stream of frames over a WebSocket. Each binary
// message is one encoded image; the handler answers with the classification
// result for that frame.
type StreamHandler struct {
	pipeline *classify.Pipeline
	detector detector.Detector
	log      *logrus.Logger
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(p *classify.Pipeline, d detector.Detector, log *logrus.Logger) *StreamHandler {
	return &StreamHandler{
		pipeline: p,
		detector: d,
		log:      log,
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "Model not loaded")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		response, _ := classifyImage(h.pipeline, h.detector, h.log, data)
		if err := conn.WriteJSON(response); err != nil {
			return
		}
	}
}
