package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

func (s *HTTPServer) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := s.deps.DB.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		jsonMsg(c, http.StatusServiceUnavailable, msgDatabaseError)
		return
	}
	jsonMsg(c, http.StatusOK, "ok")
}
