package server

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// stream upgrades to a websocket and runs one ExecRequest per message,
// answering each with an ExecResponse
func (s *Server) stream(c *gin.Context) {
	sess, found := s.lookup(c)
	if !found {
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	logger := s.logger.With().Str("session", sess.ID.String()).Logger()
	logger.Debug().Msg("Stream opened")
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("Stream read failed")
			}
			return
		}
		var req ExecRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			if err := conn.WriteJSON(errorResponse{Error: "invalid message"}); err != nil {
				return
			}
			continue
		}
		if _, open := s.Session(sess.ID); !open {
			_ = conn.WriteJSON(errorResponse{Error: "session not found"})
			return
		}
		if err := conn.WriteJSON(execute(sess, req.Input)); err != nil {
			logger.Debug().Err(err).Msg("Stream write failed")
			return
		}
	}
}

// checkOrigin accepts requests without an Origin header and those from the
// CORS allow list
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, origin)
}
