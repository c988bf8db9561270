// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package realtime

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mybini/mybini/internal/platform/ctxutil"
)

// Websocket timing. Pings keep intermediaries from reaping idle streams;
// the pong deadline detects clients that vanished without a close frame.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser origin policy is enforced by the CORS middleware;
		// the socket accepts any origin that got this far.
		return true
	},
}

// StreamHandler serves the live event stream for a single character topic.
//
// GET /api/v1/characters/{id}/stream
//
// One socket follows one character. Switching characters on the client means
// closing this socket and opening a new one, which tears the subscription
// down before the next one starts.
type StreamHandler struct {
	hub *Hub
}

// NewStreamHandler constructs a [StreamHandler] bound to the hub.
func NewStreamHandler(hub *Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// ServeHTTP upgrades the request and pumps topic events until either side closes.
func (handler *StreamHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	characterID := chi.URLParam(request, "id")
	log := ctxutil.GetLogger(request.Context())

	conn, err := upgrader.Upgrade(writer, request, nil)
	if err != nil {
		log.Warn("websocket_upgrade_failed", slog.Any("error", err))
		return
	}

	sub := handler.hub.Subscribe(TopicCharacter(characterID))

	go handler.readPump(conn, sub)
	handler.writePump(conn, sub, log)
}

// readPump consumes control frames until the peer goes away, then cancels
// the subscription so the write pump unblocks.
func (handler *StreamHandler) readPump(conn *websocket.Conn, sub *Subscription) {
	defer sub.Cancel()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Inbound data frames are ignored: the stream is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards hub events to the socket and keeps it alive with pings.
func (handler *StreamHandler) writePump(conn *websocket.Conn, sub *Subscription, log *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Cancel()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				// Subscription cancelled or dropped by the hub.
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Debug("websocket_write_failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
