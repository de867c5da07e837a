package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/time/rate"
)

const corsMaxAge = 12 * time.Hour

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       corsMaxAge,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

// rateLimit applies a token bucket per client IP
func rateLimit(rps float64, burst int) gin.HandlerFunc {
	clients := xsync.NewMap[string, *rate.Limiter]()
	return func(c *gin.Context) {
		limiter, _ := clients.LoadOrStore(c.ClientIP(), rate.NewLimiter(rate.Limit(rps), burst))
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// requestLogger logs every request and records it in the HTTP metrics
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.RecordHTTPRequest(c.Request.Method, route, status, elapsed)

		evt := s.logger.Debug()
		if status >= http.StatusInternalServerError {
			evt = s.logger.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("client", c.ClientIP()).
			Msg("Request")
	}
}
