package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS layer for plain HTTP; the
	// WebSocket endpoint mirrors it by accepting any origin when no
	// allow-list is configured.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket runs an ask loop over one WebSocket connection: each
// received queryRequest is resolved and answered with a queryResponse.
// The connection closes when the client disconnects or sends a
// malformed frame.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.logger.Debug("websocket session started", "remote", conn.RemoteAddr())

	for {
		var req queryRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		if err := conn.WriteJSON(s.answer(r.Context(), req)); err != nil {
			s.logger.Warn("websocket write failed", "err", err)
			return
		}
	}
}
