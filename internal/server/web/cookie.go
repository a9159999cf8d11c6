package web

import (
	"net/http"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) setSessionCookie(c *gin.Context, token models.SessionToken) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.SessionCookieName, string(token), int(s.cfg.SessionMaxAge.Seconds()), "/", "", !s.cfg.InsecureCookies, true)
}

func (s *HTTPServer) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", !s.cfg.InsecureCookies, true)
}
