package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/userfeed/internal/logging"
	"github.com/dmitrijs2005/userfeed/internal/pipeline"
)

const (
	defaultPongWait  = 60 * time.Second
	defaultWriteWait = 10 * time.Second
	maxMessageSize   = 512
)

// StreamConfig controls the websocket keepalive.
type StreamConfig struct {
	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration
}

func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		PingInterval: defaultPongWait * 9 / 10,
		PongWait:     defaultPongWait,
		WriteWait:    defaultWriteWait,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Stream upgrades to a websocket and pushes the current state followed by
// every newly published one. Slow clients skip intermediate states.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	log := h.log(r, "handlers.stream")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	sub := h.pipeline.Subscribe()
	log.Info(r.Context(), "stream opened", "remote", r.RemoteAddr)

	go h.readPump(conn, sub)
	h.writePump(r.Context(), log, conn, sub)

	log.Info(r.Context(), "stream closed", "remote", r.RemoteAddr)
}

// readPump only processes control frames. Any read error ends the stream.
func (h *Handler) readPump(conn *websocket.Conn, sub *pipeline.Subscription) {
	defer sub.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.stream.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.stream.PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) writePump(ctx context.Context, log logging.Logger, conn *websocket.Conn, sub *pipeline.Subscription) {
	ticker := time.NewTicker(h.stream.PingInterval)
	defer func() {
		ticker.Stop()
		sub.Close()
		_ = conn.Close()
	}()

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

	for {
		select {
		case st, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(h.stream.WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
				return
			}
			if err := conn.WriteJSON(NewStateView(st)); err != nil {
				log.Warn(ctx, "websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.stream.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(h.stream.WriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
			return
		}
	}
}
