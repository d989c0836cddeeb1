package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/config"
	"github.com/mo13ammad/ja-ta-jar-sub000/internal/infra/obs"
)

type SessionHTTP interface {
	Open(c *gin.Context)
	Get(c *gin.Context)
	Select(c *gin.Context)
	Hover(c *gin.Context)
	ClearHover(c *gin.Context)
	Clear(c *gin.Context)
	SwitchRoom(c *gin.Context)
	Retry(c *gin.Context)
	Close(c *gin.Context)
}

type CalendarHTTP interface {
	Window(c *gin.Context)
}

type PeakHTTP interface {
	Mark(c *gin.Context)
	Unmark(c *gin.Context)
}

type Handlers struct {
	Session  SessionHTTP
	Calendar CalendarHTTP
	Peak     PeakHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Calendar != nil {
		api.GET("/houses/:id/calendar", h.Calendar.Window)
	}
	if h.Session != nil {
		api.POST("/houses/:id/sessions", h.Session.Open)
		sessionGroup := api.Group("/sessions/:id")
		sessionGroup.GET("", h.Session.Get)
		sessionGroup.POST("/select", h.Session.Select)
		sessionGroup.POST("/hover", h.Session.Hover)
		sessionGroup.DELETE("/hover", h.Session.ClearHover)
		sessionGroup.POST("/clear", h.Session.Clear)
		sessionGroup.POST("/switch-room", h.Session.SwitchRoom)
		sessionGroup.POST("/retry", h.Session.Retry)
		sessionGroup.DELETE("", h.Session.Close)
		if h.Peak != nil {
			sessionGroup.POST("/peaks", h.Peak.Mark)
			sessionGroup.DELETE("/peaks", h.Peak.Unmark)
		}
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
