package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/detector"
)

// dialStream connects a WebSocket client to a test server's /api/ws
// endpoint.
func dialStream(t *testing.T, srv *Server) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func TestStream(t *testing.T) {
	t.Run("classifies streamed frames", func(t *testing.T) {
		mock := detector.NewMockDetector()
		mock.SetHands([]detector.HandLandmarks{detector.LetterALandmarks()})
		srv := New(Config{Pipeline: testPipeline(t), Detector: mock, Log: testLogger()})

		conn, _, err := dialStream(t, srv)
		if err != nil {
			t.Fatalf("dial stream: %v", err)
		}

		frame := encodeTestJPEG(t)
		for i := 0; i < 2; i++ {
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				t.Fatalf("write frame %d: %v", i, err)
			}

			var body classifyResponse
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			if err := conn.ReadJSON(&body); err != nil {
				t.Fatalf("read response %d: %v", i, err)
			}
			if body.Gesture != "A" {
				t.Errorf("frame %d: expected gesture A, got %q", i, body.Gesture)
			}
			if len(body.Landmarks) != detector.NumLandmarks {
				t.Errorf("frame %d: expected %d landmarks, got %d", i, detector.NumLandmarks, len(body.Landmarks))
			}
		}

		if mock.Calls != 2 {
			t.Errorf("expected 2 detector calls, got %d", mock.Calls)
		}
	})

	t.Run("reports no hand per frame", func(t *testing.T) {
		srv := New(Config{Pipeline: testPipeline(t), Detector: detector.NewMockDetector(), Log: testLogger()})

		conn, _, err := dialStream(t, srv)
		if err != nil {
			t.Fatalf("dial stream: %v", err)
		}

		if err := conn.WriteMessage(websocket.BinaryMessage, encodeTestJPEG(t)); err != nil {
			t.Fatalf("write frame: %v", err)
		}

		var body classifyResponse
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&body); err != nil {
			t.Fatalf("read response: %v", err)
		}
		if body.Gesture != GestureNoHand {
			t.Errorf("expected %q, got %q", GestureNoHand, body.Gesture)
		}
	})

	t.Run("ignores text messages", func(t *testing.T) {
		mock := detector.NewMockDetector()
		mock.SetHands([]detector.HandLandmarks{detector.LetterALandmarks()})
		srv := New(Config{Pipeline: testPipeline(t), Detector: mock, Log: testLogger()})

		conn, _, err := dialStream(t, srv)
		if err != nil {
			t.Fatalf("dial stream: %v", err)
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
			t.Fatalf("write text message: %v", err)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, encodeTestJPEG(t)); err != nil {
			t.Fatalf("write frame: %v", err)
		}

		// The first reply corresponds to the binary frame; the text
		// message produced none.
		var body classifyResponse
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&body); err != nil {
			t.Fatalf("read response: %v", err)
		}
		if body.Gesture != "A" {
			t.Errorf("expected gesture A, got %q", body.Gesture)
		}
		if mock.Calls != 1 {
			t.Errorf("expected 1 detector call, got %d", mock.Calls)
		}
	})

	t.Run("refuses the upgrade without a model", func(t *testing.T) {
		srv := New(Config{Detector: detector.NewMockDetector(), Log: testLogger()})

		conn, resp, err := dialStream(t, srv)
		if err == nil {
			t.Fatal("expected dial to fail on a degraded service")
		}
		if conn != nil {
			t.Error("expected no connection on a degraded service")
		}
		if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
			code := 0
			if resp != nil {
				code = resp.StatusCode
			}
			t.Errorf("expected status 503, got %d", code)
		}
	})
}
