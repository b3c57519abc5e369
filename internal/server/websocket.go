package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tcgengine/internal/logging"
)

// upgrader mirrors the teacher's package-level websocket.Upgrader
// (internal/delivery/websocket/core/handler.go): fixed buffer sizes, all
// origins allowed for this demo host (a production deployment would
// restrict CheckOrigin, same caveat the teacher's own comment carries).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWebsocket upgrades the connection and registers it with hub. The
// read loop only exists to detect the client going away — this is a
// publish-only stream (spec §4.7 "subscribers are strictly observers");
// an inbound message is never more than a liveness signal.
func ServeWebsocket(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Get().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	hub.Register(conn)

	go func() {
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
