package web

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

const readHeaderTimeout = 10 * time.Second

func (s *HTTPServer) initRouter() *gin.Engine {
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(s.recovery(), s.requestLogger())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/healthz", s.healthz)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/login", s.login)
		authGroup.POST("/register/:id", s.register)
		authGroup.POST("/update", s.requireSession(false), s.updatePassword)
		authGroup.POST("/logout", s.requireSession(false), s.logout)
	}

	engine.POST("/uri/create", s.requireSession(false), s.requireAdmin(false), s.invite)

	pages := engine.Group("/", s.requireSession(true))
	{
		pages.POST("/problem/create", s.createProblem)
		pages.POST("/problem/update", s.updateProblemStatus)
		pages.GET("/settings", s.settings)
		pages.GET("/problems", s.requireAdmin(true), s.listProblems)
		pages.GET("/dashboard", s.requireAdmin(true), s.dashboard)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine
}
