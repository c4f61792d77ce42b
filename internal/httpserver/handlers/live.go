package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MrSnakeDoc/bookingdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookingdash/internal/live"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// Live upgrades to a websocket that receives the current view, then every
// new one.
func Live(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client.
			d.Logger.Debug("websocket upgrade failed", logger.Error(err))
			return
		}

		initial, err := live.Encode(d.Store.View())
		if err != nil {
			d.Logger.Error("failed to encode live view", logger.Error(err))
			_ = conn.Close()
			return
		}
		d.Hub.Serve(conn, initial)
	}
}
