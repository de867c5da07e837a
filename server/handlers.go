package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brettbedarf/webcli/shell"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionInfo describes an open session
type SessionInfo struct {
	ID      uuid.UUID `json:"id"`
	Path    string    `json:"path"`
	Theme   string    `json:"theme"`
	Prompt  string    `json:"prompt"`
	Created time.Time `json:"created"`
}

// SessionState is SessionInfo plus the session's history and transcript
type SessionState struct {
	SessionInfo
	History    []string       `json:"history"`
	Transcript []shell.Record `json:"transcript"`
}

// ExecRequest is the body of an exec call and of every websocket message
type ExecRequest struct {
	Input string `json:"input"`
}

// ExecResponse reports the outcome of one input line. Record is nil for blank
// input and for clear; Cleared tells the two apart.
type ExecResponse struct {
	Record  *shell.Record `json:"record"`
	Path    string        `json:"path"`
	Theme   string        `json:"theme"`
	Prompt  string        `json:"prompt"`
	Cleared bool          `json:"cleared"`
}

// CompleteResponse lists completion candidates for a partial line
type CompleteResponse struct {
	Candidates []string `json:"candidates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func info(sess *shell.Session) SessionInfo {
	return SessionInfo{
		ID:      sess.ID,
		Path:    sess.Path(),
		Theme:   sess.Theme().String(),
		Prompt:  sess.Prompt(),
		Created: sess.Created(),
	}
}

// execute runs input on sess and builds the response shared by the exec
// endpoint and the websocket stream
func execute(sess *shell.Session, input string) ExecResponse {
	rec := sess.Execute(input)
	return ExecResponse{
		Record:  rec,
		Path:    sess.Path(),
		Theme:   sess.Theme().String(),
		Prompt:  sess.Prompt(),
		Cleared: rec == nil && strings.TrimSpace(input) != "",
	}
}

// lookup resolves the :id parameter, writing a 404 when it names no open session
func (s *Server) lookup(c *gin.Context) (*shell.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err == nil {
		if sess, found := s.Session(id); found {
			return sess, true
		}
	}
	c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "session not found"})
	return nil, false
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.Len()})
}

func (s *Server) createSession(c *gin.Context) {
	sess, err := s.NewSession(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrSessionLimit) {
			c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to open session")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to open session"})
		return
	}
	c.JSON(http.StatusCreated, info(sess))
}

func (s *Server) getSession(c *gin.Context) {
	sess, found := s.lookup(c)
	if !found {
		return
	}
	c.JSON(http.StatusOK, SessionState{
		SessionInfo: info(sess),
		History:     sess.History(),
		Transcript:  sess.Transcript(),
	})
}

func (s *Server) deleteSession(c *gin.Context) {
	sess, found := s.lookup(c)
	if !found {
		return
	}
	s.CloseSession(sess.ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) exec(c *gin.Context) {
	sess, found := s.lookup(c)
	if !found {
		return
	}
	var req ExecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, execute(sess, req.Input))
}

func (s *Server) complete(c *gin.Context) {
	sess, found := s.lookup(c)
	if !found {
		return
	}
	candidates := sess.Complete(c.Query("input"))
	if candidates == nil {
		candidates = []string{}
	}
	c.JSON(http.StatusOK, CompleteResponse{Candidates: candidates})
}
