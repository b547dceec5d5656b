package ws

import (
	"log"
	"net/http"
)

// WSHandler subscribes a client to grab lifecycle events. A client passes
// ?grabID=<id> to follow one grab; without it the client joins the "all"
// room and sees everything.
func WSHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied
			return
		}

		roomID := r.URL.Query().Get("grabID")
		if roomID == "" {
			roomID = RoomAll
		}

		hub.Register(roomID, conn)
		defer hub.Unregister(roomID, conn)

		// subscribers never send anything meaningful; the read loop only
		// detects disconnects
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Printf("[WS] disconnect room=%s", roomID)
				return
			}
		}
	}
}
