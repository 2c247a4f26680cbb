package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
	// FrameDelay paces the resolution frames streamed to a client.
	FrameDelay time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	delay, err := lookupDuration("FRAME_DELAY", 120*time.Millisecond)
	if err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	ws := &WebSocket{
		Upgrader:   upgrader,
		FrameDelay: delay,
	}

	return ws, nil
}
