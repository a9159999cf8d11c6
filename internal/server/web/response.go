package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// jsonMsg writes the {status, message} envelope. Codes of 400 and above
// are reported as errors.
func jsonMsg(c *gin.Context, code int, msg string) {
	jsonMsgObj(c, code, msg, nil)
}

// jsonMsgObj writes the envelope with extra top-level fields merged in.
func jsonMsgObj(c *gin.Context, code int, msg string, extra gin.H) {
	body := gin.H{}
	for k, v := range extra {
		body[k] = v
	}
	body["status"] = statusSuccess
	if code >= http.StatusBadRequest {
		body["status"] = statusError
	}
	body["message"] = msg
	c.JSON(code, body)
}

// abortMsg writes the envelope and stops the handler chain.
func abortMsg(c *gin.Context, code int, msg string) {
	jsonMsg(c, code, msg)
	c.Abort()
}
