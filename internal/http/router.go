package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/opendoors/notify-relay/internal/config"
	"github.com/opendoors/notify-relay/internal/http/middleware"
)

func NewRouter(handler *Handler, cfg *config.Config, metrics http.Handler, log zerolog.Logger) *gin.Engine {
	if !strings.EqualFold(cfg.Environment, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Recovery(log))
	router.Use(cors.New(corsConfig(cfg.CORS)))

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
	handler.Register(router)
	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// Browsers refuse credentialed responses with a wildcard origin.
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}
