package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/qforge/internal/events"
)

// LiveHandler streams completed-run events to dashboard clients over a
// websocket at /api/runs/live. Each connection gets its own bus
// subscription; a slow client only loses its own events.
type LiveHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewLiveHandler creates a live run feed handler.
func NewLiveHandler(bus *events.Bus, log zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		bus: bus,
		log: log.With().Str("handler", "live").Logger(),
	}
}

// ServeHTTP upgrades the connection and forwards bus events until the
// client disconnects.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The dashboard may be served from another origin.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ch, unsubscribe := h.bus.Subscribe(32)
	defer unsubscribe()

	h.log.Debug().Msg("Live feed client connected")

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, event)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Live feed client disconnected")
				return
			}
		}
	}
}
