package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bromolabs/bromo-server/internal/common"
)

func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "Bromo API is running")
}

func (h *Handler) Health(c *gin.Context) {
	base := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UnixMilli(),
	}

	if h.DB == nil {
		base["db"] = gin.H{"enabled": false}
		common.OK(c, base)
		return
	}

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":        false,
			"status":    "unhealthy",
			"timestamp": time.Now().UnixMilli(),
			"db":        gin.H{"enabled": true, "ok": false, "error": err.Error()},
		})
		return
	}

	base["db"] = gin.H{"enabled": true, "ok": true}
	common.OK(c, base)
}
