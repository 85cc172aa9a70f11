package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bromolabs/bromo-server/internal/common"
	"github.com/bromolabs/bromo-server/internal/config"
	"github.com/bromolabs/bromo-server/internal/httpapi/handlers"
	"github.com/bromolabs/bromo-server/internal/httpapi/middleware"
	"github.com/bromolabs/bromo-server/internal/pipeline"
	"github.com/bromolabs/bromo-server/internal/store/redisstore"
)

func NewRouter(db *gorm.DB, cfg config.Config, rds *redisstore.Store, sink pipeline.Sink) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Use(middleware.RequestID())

	h := handlers.NewHandler(db, cfg, rds, sink)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute, cfg.RateLimitExempt)

	r.GET("/", h.Ping)
	r.GET("/health", h.Health)

	r.POST("/users", h.CreateUser)
	r.POST("/login", h.Login)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.Use(middleware.RateLimit(limiter))

	authGroup.GET("/me", h.Me)
	authGroup.POST("/verify-adult", h.VerifyAdult)

	authGroup.POST("/chat", h.Chat)
	authGroup.POST("/summarize", h.Summarize)

	authGroup.GET("/memories", h.ListMemories)
	authGroup.POST("/memories", h.CreateMemory)
	authGroup.PUT("/memories/:id", h.UpdateMemory)
	authGroup.DELETE("/memories/:id", h.DeleteMemory)

	return r
}
