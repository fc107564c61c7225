package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/holidayopt/internal/optimizer"
	"github.com/wonny/holidayopt/internal/selection"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamMessage is one websocket frame of /ws/optimize.
// Type is "pick" (one per greedy round), then "result" or "error".
type StreamMessage struct {
	Type   string            `json:"type"`
	Pick   *selection.Pick   `json:"pick,omitempty"`
	Result *optimizer.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Stream runs an optimization and pushes greedy progress over a websocket
// GET /ws/optimize?year=2025&count=3
func (h *OptimizeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	// validation errors are plain HTTP responses, before the upgrade
	if r.URL.Query().Get("algorithm") == "" {
		q := r.URL.Query()
		q.Set("algorithm", string(optimizer.Greedy))
		r.URL.RawQuery = q.Encode()
	}
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	if err := h.engine.Validate(req); err != nil {
		h.respondOptimizeError(w, req, err)
		return
	}
	if !h.allowExhaustive(w, r, req) {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// reader: a closed client connection cancels the run
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(msg StreamMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}

	result, err := h.engine.OptimizeWithProgress(ctx, req, func(p selection.Pick) {
		if err := send(StreamMessage{Type: "pick", Pick: &p}); err != nil {
			cancel()
		}
	})
	if err != nil {
		_, message := optimizeErrorStatus(err)
		_ = send(StreamMessage{Type: "error", Error: message})
		return
	}

	if err := send(StreamMessage{Type: "result", Result: result}); err != nil {
		h.logger.WithError(err).Debug("Websocket client went away before result")
		return
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(writeWait))
}
