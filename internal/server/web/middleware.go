package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

const (
	loginPage   = "/login"
	landingPage = "/report"
)

// requireSession resolves the session cookie. Page routes redirect to the
// login page on failure, JSON routes answer with the envelope.
func (s *HTTPServer) requireSession(page bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, _ := c.Cookie(common.SessionCookieName)
		userID, err := s.deps.Sessions.Authenticate(ctx, models.SessionToken(token))
		if err != nil {
			if !errors.Is(err, common.ErrUnauthenticated) {
				s.logger.Error(ctx, "session lookup failed", "error", err)
				abortMsg(c, http.StatusInternalServerError, msgDatabaseError)
				return
			}
			if page {
				c.Redirect(http.StatusFound, loginPage)
				c.Abort()
				return
			}
			abortMsg(c, http.StatusBadRequest, msgNotAuthenticated)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// requireAdmin must run after requireSession.
func (s *HTTPServer) requireAdmin(page bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		ok, err := s.deps.Authorization.IsAdmin(ctx, currentUser(c))
		if err != nil {
			s.logger.Error(ctx, "role lookup failed", "error", err)
			abortMsg(c, http.StatusInternalServerError, msgDatabaseError)
			return
		}
		if !ok {
			if page {
				c.Redirect(http.StatusFound, landingPage)
				c.Abort()
				return
			}
			abortMsg(c, http.StatusBadRequest, msgNotAuthorized)
			return
		}

		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *HTTPServer) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, p any) {
		s.logger.Error(c.Request.Context(), "panic in handler", "panic", p, "path", c.Request.URL.Path)
		abortMsg(c, http.StatusInternalServerError, msgInternalError)
	})
}
