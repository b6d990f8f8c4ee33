package kitchen

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// SSEHandler streams board snapshots to connected kitchen displays so they
// do not have to wait out the poll interval after a change.
type SSEHandler struct {
	board  *Board
	logger apt.Logger
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(board *Board, logger apt.Logger) *SSEHandler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &SSEHandler{
		board:  board,
		logger: logger,
	}
}

// ServeHTTP implements http.Handler for SSE endpoint
func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	h.logger.Info("new SSE connection", "subscriber_id", subscriberID)

	events := h.board.Subscribe(subscriberID)
	defer h.board.Unsubscribe(subscriberID)

	// Send initial comment to establish connection
	fmt.Fprintf(w, ": connected\n\n")

	// Configure retry interval for reconnection (in milliseconds)
	fmt.Fprintf(w, "retry: 2000\n\n")

	// The first event is the current snapshot, so a reconnecting display
	// is never blank while waiting for the next change.
	h.sendBoardEvent(w, h.board.Snapshot())

	// Send keepalive every 30 seconds
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("SSE client disconnected", "subscriber_id", subscriberID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case view, ok := <-events:
			if !ok {
				h.logger.Info("board event channel closed", "subscriber_id", subscriberID)
				return
			}
			h.sendBoardEvent(w, view)
		}
	}
}

func (h *SSEHandler) sendBoardEvent(w http.ResponseWriter, view BoardView) {
	data, err := json.Marshal(view)
	if err != nil {
		h.logger.Error("cannot marshal board view", "error", err)
		return
	}

	fmt.Fprintf(w, "event: board-update\n")
	fmt.Fprintf(w, "data: %s\n\n", data)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
