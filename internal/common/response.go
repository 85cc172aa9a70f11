package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope. Extra fields are merged next to "ok".
func OK(c *gin.Context, data gin.H) {
	out := gin.H{"ok": true}
	for k, v := range data {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"ok":    false,
		"error": msg,
	})
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "unauthorized")
}
